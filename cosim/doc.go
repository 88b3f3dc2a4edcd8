// Package cosim drives a single co-simulation FMU instance through its
// lifecycle: transport gating, instantiate, initialize, fixed-step stepping,
// terminate and free.
//
// # Reading Guide
//
//   - config.go: Config and the resolution of the simulation window
//   - session.go: the Session state machine and step loop
//   - log.go: the Diagnostic Log contract and its logrus adapter
//
// A Session owns its fmi.Instance exclusively for the duration of Run and is
// not reusable. Everything runs on the caller's goroutine; there are no
// suspension points other than the blocking calls into the instance, the
// Sink and the Observers.
package cosim
