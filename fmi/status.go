package fmi

import (
	"fmt"
	"strings"
)

// Status is the native status code returned by an FMU lifecycle call.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusDiscard
	StatusError
	StatusFatal
	StatusPending
)

var statusNames = map[Status]string{
	StatusOK:      "fmiOK",
	StatusWarning: "fmiWarning",
	StatusDiscard: "fmiDiscard",
	StatusError:   "fmiError",
	StatusFatal:   "fmiFatal",
	StatusPending: "fmiPending",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("fmiStatus(%d)", int(s))
}

// Severity is the driver's normalized view of a Status.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarning
	SeverityNonFatal
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityNonFatal:
		return "non-fatal error"
	default:
		return "fatal"
	}
}

// Severity maps the native status onto the closed set the driver branches on.
// Discard and pending leave the slave usable but are not progress; error,
// fatal and any unknown code are fatal.
func (s Status) Severity() Severity {
	switch s {
	case StatusOK:
		return SeverityOK
	case StatusWarning:
		return SeverityWarning
	case StatusDiscard, StatusPending:
		return SeverityNonFatal
	default:
		return SeverityFatal
	}
}

// Continuable reports whether a run may proceed after this status.
func (s Status) Continuable() bool {
	return s.Severity() <= SeverityWarning
}

// ParseStatus accepts either the String form ("fmiWarning") or the bare
// name ("warning"), case-insensitively.
func ParseStatus(s string) (Status, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for st, name := range statusNames {
		lower := strings.ToLower(name)
		if want == lower || want == strings.TrimPrefix(lower, "fmi") {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown FMU status %q", s)
}
