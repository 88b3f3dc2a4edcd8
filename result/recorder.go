package result

import (
	"fmt"

	"github.com/fmi-tools/fmucheck/fmi"
)

// Sample is one recorded communication point.
type Sample struct {
	Time   float64
	Values []float64
}

// Recorder keeps every sample in memory.
type Recorder struct {
	reader  fmi.OutputReader
	names   []string
	samples []Sample
}

// NewRecorder creates a Recorder reading from reader.
func NewRecorder(reader fmi.OutputReader) *Recorder {
	return &Recorder{
		reader:  reader,
		names:   reader.OutputNames(),
		samples: make([]Sample, 0),
	}
}

func (r *Recorder) Write(t float64) error {
	values, err := r.reader.Outputs()
	if err != nil {
		return fmt.Errorf("read outputs: %w", err)
	}
	r.samples = append(r.samples, Sample{Time: t, Values: values})
	return nil
}

func (r *Recorder) Names() []string   { return r.names }
func (r *Recorder) Samples() []Sample { return r.samples }

// Series returns the recorded values of one output, in sample order.
func (r *Recorder) Series(name string) ([]float64, bool) {
	idx := -1
	for i, n := range r.names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	series := make([]float64, 0, len(r.samples))
	for _, s := range r.samples {
		if idx < len(s.Values) {
			series = append(series, s.Values[idx])
		}
	}
	return series, true
}
