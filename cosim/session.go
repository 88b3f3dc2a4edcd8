// cosim/session.go
package cosim

import (
	"fmt"

	"github.com/fmi-tools/fmucheck/fmi"
)

// Sink records one result sample at simulation time t.
type Sink interface {
	Write(t float64) error
}

// Observer is notified of progress on the session's goroutine.
type Observer interface {
	OnStep(t float64, status fmi.Status)
	OnFinish(out Outcome)
}

// Result is the driver-level verdict of a run.
type Result int

const (
	Success Result = iota
	Error
)

func (r Result) String() string {
	if r == Success {
		return "success"
	}
	return "error"
}

// Outcome summarizes a finished run.
type Outcome struct {
	Result Result
	// Status is the last native status observed from the FMU.
	Status fmi.Status
	// Simulated is false when the FMU was not executed because its transport
	// is not supported in-process; such a run is still a Success.
	Simulated bool
	MIMEType  string

	Start    float64
	Stop     float64
	StepSize float64

	// Steps counts DoStep calls, Samples the successful sink writes.
	Steps    int
	Samples  int
	LastTime float64
}

// OK reports whether the driver-level result is Success.
func (o Outcome) OK() bool { return o.Result == Success }

// Session drives one FMU instance from instantiation to free.
type Session struct {
	cfg       Config
	inst      fmi.Instance
	sink      Sink
	log       Log
	observers []Observer

	// clock and last normalized FMU status
	t      float64
	status fmi.Status
	// err is the first driver-level error; never cleared once set
	err error
	ran bool
}

// NewSession takes exclusive ownership of inst for the lifetime of Run.
// A nil sink discards samples; a nil log discards diagnostics.
func NewSession(cfg Config, inst fmi.Instance, sink Sink, log Log) *Session {
	if sink == nil {
		sink = discardSink{}
	}
	if log == nil {
		log = Discard
	}
	if cfg.InstanceName == "" {
		cfg.InstanceName = DefaultInstanceName
	}
	return &Session{
		cfg:       cfg,
		inst:      inst,
		sink:      sink,
		log:       log,
		observers: make([]Observer, 0),
		status:    fmi.StatusOK,
	}
}

func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run is shorthand for NewSession(cfg, inst, sink, log).Run().
func Run(cfg Config, inst fmi.Instance, sink Sink, log Log) (Outcome, error) {
	return NewSession(cfg, inst, sink, log).Run()
}

// Run executes the co-simulation. The returned error is nil exactly when
// out.Result is Success, and otherwise wraps one of the package sentinels.
// Once instantiation succeeds, Terminate and Free are called on every exit
// path; their failures are logged but never change the outcome.
func (s *Session) Run() (out Outcome, err error) {
	if s.ran {
		return Outcome{Result: Error, Status: s.status}, ErrReused
	}
	s.ran = true
	defer func() {
		for _, o := range s.observers {
			o.OnFinish(out)
		}
	}()

	mimeType, ok := s.transport()
	out.MIMEType = mimeType
	if !ok {
		logf(s.log, LevelInfo, "The FMU requests simulator with MIME type '%s'. Please, start it manually to perform the simulation.", mimeType)
		return out, nil
	}

	w, err := resolveWindow(s.cfg, s.inst.DefaultExperiment())
	out.Start, out.Stop, out.StepSize = w.start, w.stop, w.step
	if err != nil {
		logf(s.log, LevelFatal, "%v", err)
		out.Result = Error
		return out, err
	}

	logf(s.log, LevelVerbose, "Checker will instantiate the slave with\n\tFMU location = '%s'\n\tMIME type = '%s'", s.cfg.Location, mimeType)
	if err := s.inst.Instantiate(s.cfg.InstanceName, s.cfg.Location, mimeType, fmi.LaunchOptions{}); err != nil {
		logf(s.log, LevelFatal, "Could not instantiate the model: %v", err)
		out.Result = Error
		return out, fmt.Errorf("%w: %w", ErrInstantiate, err)
	}
	defer s.release()
	out.Simulated = true

	s.t = w.start
	if s.initialize(w) {
		s.stepLoop(w, &out)
	}
	s.classify()

	out.Status = s.status
	if s.err != nil {
		out.Result = Error
	}
	return out, s.err
}

// transport resolves the MIME descriptor the slave is instantiated with.
// ok is false when the FMU asks for a transport this driver cannot host.
func (s *Session) transport() (mimeType string, ok bool) {
	mimeType = s.inst.MIMEType()
	if s.inst.Kind() == fmi.KindCoSimulationStandalone || mimeType == "" {
		return fmi.MIMESharedLibrary, true
	}
	return mimeType, fmi.IsSimulatableMIME(mimeType)
}

func (s *Session) initialize(w window) bool {
	s.status = s.inst.Initialize(w.start, true, w.stop)
	if !s.status.Continuable() {
		logf(s.log, LevelFatal, "Failed to initialize FMU for simulation (FMU status: %s)", s.status)
		s.err = fmt.Errorf("%w: FMU status %s", ErrInitialize, s.status)
		return false
	}
	logf(s.log, LevelInfo, "Initialized FMU for simulation starting at time %g", w.start)
	s.status = fmi.StatusOK
	return true
}

// stepLoop advances the clock over the window one fixed step at a time.
// The loop bound carries the same tolerance as the clamp, so accumulated
// rounding can neither skip nor overshoot the final sample at w.stop.
func (s *Session) stepLoop(w window, out *Outcome) {
	eps := clampTolerance * w.step
	for s.t < w.stop+eps && s.status == fmi.StatusOK {
		if s.t >= w.stop-eps {
			s.t = w.stop
		}
		logf(s.log, LevelVerbose, "Simulation time: %g", s.t)

		s.status = s.inst.DoStep(s.t, w.step, true)
		out.Steps++
		for _, o := range s.observers {
			o.OnStep(s.t, s.status)
		}

		if err := s.sink.Write(s.t); err != nil {
			logf(s.log, LevelError, "Could not write results at time %g: %v", s.t, err)
			s.err = fmt.Errorf("%w at time %g: %w", ErrSink, s.t, err)
			return
		}
		out.Samples++
		out.LastTime = s.t

		if !s.status.Continuable() {
			return
		}
		s.status = fmi.StatusOK
		s.t += w.step
	}
}

// classify decides the driver-level result once stepping is over.
func (s *Session) classify() {
	if !s.status.Continuable() {
		logf(s.log, LevelFatal, "Simulation loop terminated at time %g since FMU returned status: %s", s.t, s.status)
		if s.err == nil {
			s.err = fmt.Errorf("%w: FMU status %s at time %g", ErrStep, s.status, s.t)
		}
		return
	}
	if s.err == nil {
		logf(s.log, LevelInfo, "Simulation finished successfully")
	}
}

// release terminates and frees the instance. It never touches s.err.
func (s *Session) release() {
	if status := s.inst.Terminate(); status != fmi.StatusOK {
		logf(s.log, LevelError, "fmiTerminateSlave returned status: %s", status)
	}
	s.inst.Free()
}

type discardSink struct{}

func (discardSink) Write(float64) error { return nil }
