package cosim

import (
	"errors"

	"github.com/fmi-tools/fmucheck/fmi"
)

// recordingSink keeps every written time and fails on the failAt-th write (1-based).
type recordingSink struct {
	times  []float64
	failAt int
}

func (r *recordingSink) Write(t float64) error {
	if r.failAt > 0 && len(r.times)+1 == r.failAt {
		return errors.New("disk full")
	}
	r.times = append(r.times, t)
	return nil
}

type logEntry struct {
	level Level
	msg   string
}

// memLog records diagnostics for assertions.
type memLog struct {
	entries []logEntry
}

func (m *memLog) Log(level Level, msg string) {
	m.entries = append(m.entries, logEntry{level, msg})
}

func (m *memLog) count(level Level) int {
	n := 0
	for _, e := range m.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

type stepRecord struct {
	t      float64
	status fmi.Status
}

// recordingObserver captures OnStep and OnFinish calls.
type recordingObserver struct {
	steps    []stepRecord
	finished []Outcome
}

func (r *recordingObserver) OnStep(t float64, status fmi.Status) {
	r.steps = append(r.steps, stepRecord{t, status})
}

func (r *recordingObserver) OnFinish(out Outcome) {
	r.finished = append(r.finished, out)
}

// failFrom returns a DoStep function reporting status once t reaches from.
func failFrom(from float64, status fmi.Status) func(t, h float64, newStep bool) fmi.Status {
	return func(t, h float64, newStep bool) fmi.Status {
		if t >= from {
			return status
		}
		return fmi.StatusOK
	}
}

func window01() fmi.DefaultExperiment {
	return fmi.DefaultExperiment{StartTime: 0, StopTime: 1, StartDefined: true, StopDefined: true}
}
