// Package result implements the sinks that record one sample of an FMU's
// outputs per communication point: CSV files, SQLite databases and an
// in-memory Recorder used for summaries and plots.
//
// Every sink implements Write(t float64) error and reads the values to
// record from an fmi.OutputReader at the time of the call.
package result
