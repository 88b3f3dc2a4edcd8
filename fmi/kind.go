package fmi

import (
	"fmt"
	"strings"
)

// Kind is the FMU type declared in the model description.
type Kind int

const (
	KindModelExchange Kind = iota
	KindCoSimulationStandalone
	KindCoSimulationTool
)

var kindNames = map[Kind]string{
	KindModelExchange:          "me",
	KindCoSimulationStandalone: "cs_standalone",
	KindCoSimulationTool:       "cs_tool",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind accepts the names printed by Kind.String, case-insensitively.
func ParseKind(s string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown FMU kind %q", s)
}
