package fmi

// MIME descriptors naming the execution mechanism for a co-simulation slave.
const (
	MIMESharedLibrary = "application/x-fmu-sharedlibrary"
	MIMEModelica      = "application/x-fmu-modelica"
)

// simulatableMIME lists the transports this checker can drive in-process.
var simulatableMIME = map[string]bool{
	MIMESharedLibrary: true,
	MIMEModelica:      true,
}

// IsSimulatableMIME returns true if the descriptor names a transport the
// driver knows how to execute.
func IsSimulatableMIME(mimeType string) bool {
	return simulatableMIME[mimeType]
}
