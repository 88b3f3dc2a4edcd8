// Package fmi holds the vocabulary shared by the co-simulation driver and the
// slaves it drives: native status codes, FMU kinds, MIME transport
// descriptors and the Instance lifecycle contract.
//
// The package has no dependencies on cosim/ or slave/. It only defines types.
package fmi
