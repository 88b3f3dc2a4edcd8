package result

import "math"

// OutputSummary aggregates one output over a run.
type OutputSummary struct {
	Name  string
	Min   float64
	Max   float64
	Final float64
}

// Summary aggregates a Recorder.
type Summary struct {
	Samples   int
	FirstTime float64
	LastTime  float64
	Outputs   []OutputSummary
}

// Summarize computes per-output extrema and final values.
func Summarize(r *Recorder) Summary {
	samples := r.Samples()
	summary := Summary{
		Samples: len(samples),
		Outputs: make([]OutputSummary, len(r.Names())),
	}
	for i, name := range r.Names() {
		summary.Outputs[i] = OutputSummary{Name: name, Min: math.Inf(1), Max: math.Inf(-1)}
	}
	if len(samples) == 0 {
		for i := range summary.Outputs {
			summary.Outputs[i].Min, summary.Outputs[i].Max = 0, 0
		}
		return summary
	}

	summary.FirstTime = samples[0].Time
	summary.LastTime = samples[len(samples)-1].Time
	for _, s := range samples {
		for i, v := range s.Values {
			if i >= len(summary.Outputs) {
				break
			}
			o := &summary.Outputs[i]
			o.Min = math.Min(o.Min, v)
			o.Max = math.Max(o.Max, v)
			o.Final = v
		}
	}
	return summary
}
