package slave

import (
	"fmt"
	"math"
)

// maxSubstep bounds the internal integration step inside one DoStep.
const maxSubstep = 0.01

// model is the equation part of a slave; the lifecycle lives in Slave.
type model interface {
	outputNames() []string
	reset(start float64)
	// advance moves the model state from t to t+h.
	advance(t, h float64)
	values() []float64
}

// ode integrates a continuous model with fixed RK4 sub-steps.
type ode struct {
	names []string
	x0    []float64
	f     derivFunc

	x   []float64
	rk4 rk4
}

func (o *ode) outputNames() []string { return o.names }

func (o *ode) reset(float64) {
	o.x = append(o.x[:0], o.x0...)
}

func (o *ode) advance(t, h float64) {
	n := int(math.Ceil(h / maxSubstep))
	if n < 1 {
		n = 1
	}
	dt := h / float64(n)
	for i := 0; i < n; i++ {
		o.rk4.step(o.f, o.x, t+float64(i)*dt, dt)
	}
}

func (o *ode) values() []float64 {
	out := make([]float64, len(o.x))
	copy(out, o.x)
	return out
}

// newDahlquist is the test equation dx/dt = -k x.
func newDahlquist(params map[string]float64) (model, error) {
	k := param(params, "k", 1.0)
	x0 := param(params, "x0", 1.0)
	return &ode{
		names: []string{"x"},
		x0:    []float64{x0},
		f: func(x []float64, _ float64) []float64 {
			return []float64{-k * x[0]}
		},
	}, nil
}

// newVanDerPol is the Van der Pol oscillator.
// State: [x0, x1] where x1 = dx0/dt
//
//	dx0/dt = x1
//	dx1/dt = μ(1 - x0²)x1 - x0
func newVanDerPol(params map[string]float64) (model, error) {
	mu := param(params, "mu", 1.0)
	if mu < 0 {
		return nil, fmt.Errorf("mu must be non-negative, got %g", mu)
	}
	return &ode{
		names: []string{"x0", "x1"},
		x0:    []float64{param(params, "x0", 2.0), param(params, "x1", 0.0)},
		f: func(x []float64, _ float64) []float64 {
			return []float64{x[1], mu*(1-x[0]*x[0])*x[1] - x[0]}
		},
	}, nil
}

// stair counts whole units of simulated time.
type stair struct {
	counter float64
}

func newStair(map[string]float64) (model, error) { return &stair{}, nil }

func (s *stair) outputNames() []string { return []string{"counter"} }

func (s *stair) reset(start float64) { s.counter = math.Floor(start) }

func (s *stair) advance(t, h float64) {
	s.counter = math.Floor(t + h + 1e-9)
}

func (s *stair) values() []float64 { return []float64{s.counter} }

func param(params map[string]float64, name string, def float64) float64 {
	if v, ok := params[name]; ok {
		return v
	}
	return def
}
