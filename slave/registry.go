package slave

import (
	"fmt"
	"sort"

	"github.com/fmi-tools/fmucheck/fmi"
)

type entry struct {
	description string
	experiment  fmi.DefaultExperiment
	newModel    func(params map[string]float64) (model, error)
}

var registry = map[string]entry{
	"dahlquist": {
		description: "test equation dx/dt = -k x (params: k, x0)",
		experiment:  fmi.DefaultExperiment{StartTime: 0, StopTime: 10, StartDefined: true, StopDefined: true},
		newModel:    newDahlquist,
	},
	"vanderpol": {
		description: "Van der Pol oscillator (params: mu, x0, x1)",
		experiment:  fmi.DefaultExperiment{StartTime: 0, StopTime: 20, StartDefined: true, StopDefined: true},
		newModel:    newVanDerPol,
	},
	"stair": {
		description: "counter incremented once per unit of time",
		experiment:  fmi.DefaultExperiment{StartTime: 0, StopTime: 10, StartDefined: true, StopDefined: true},
		newModel:    newStair,
	},
}

// Names lists the built-in models in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of the named model.
func Describe(name string) (string, bool) {
	e, ok := registry[name]
	return e.description, ok
}

// New builds a slave for the named model. The slave is loaded but not instantiated.
func New(name string, opts Options) (*Slave, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown model %q (available: %v)", name, Names())
	}
	m, err := e.newModel(opts.Params)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}

	s := &Slave{
		model:      m,
		opts:       opts,
		mimeType:   fmi.MIMESharedLibrary,
		kind:       fmi.KindCoSimulationStandalone,
		experiment: e.experiment,
	}
	if opts.MIMEType != "" {
		s.mimeType = opts.MIMEType
	}
	if opts.Kind != nil {
		s.kind = *opts.Kind
	}
	return s, nil
}
