// Package slave provides in-process co-simulation slaves that implement
// fmi.Instance, so the driver can be exercised without loading an FMU binary.
//
// Each slave wraps a small model (see models.go) and enforces the FMI
// lifecycle order: Instantiate, Initialize, DoStep..., Terminate, Free.
// Options can override the declared transport and kind and inject failing
// statuses at any lifecycle call.
package slave
