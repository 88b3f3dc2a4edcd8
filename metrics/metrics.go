// Package metrics exports co-simulation run statistics in the Prometheus
// text format, for node_exporter's textfile collector or CI dashboards.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fmi-tools/fmucheck/cosim"
	"github.com/fmi-tools/fmucheck/fmi"
)

var _ cosim.Observer = (*Recorder)(nil)

// Recorder observes one session. It owns a private registry so repeated runs
// in one process never collide.
type Recorder struct {
	registry *prometheus.Registry

	steps      prometheus.Counter
	stepStatus *prometheus.CounterVec
	simTime    prometheus.Gauge
	runSuccess prometheus.Gauge
	simulated  prometheus.Gauge
}

// NewRecorder registers the run metrics, labelled with model.
func NewRecorder(model string) *Recorder {
	constLabels := prometheus.Labels{"model": model}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "fmucheck_steps_total",
			Help:        "Number of DoStep calls issued to the FMU.",
			ConstLabels: constLabels,
		}),
		stepStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fmucheck_step_status_total",
			Help:        "DoStep results by native FMU status.",
			ConstLabels: constLabels,
		}, []string{"status"}),
		simTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "fmucheck_simulation_time",
			Help:        "Communication point of the most recent step.",
			ConstLabels: constLabels,
		}),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "fmucheck_run_success",
			Help:        "1 if the last run succeeded, 0 otherwise.",
			ConstLabels: constLabels,
		}),
		simulated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "fmucheck_run_simulated",
			Help:        "1 if the FMU was executed, 0 if its transport was not supported.",
			ConstLabels: constLabels,
		}),
	}
	r.registry.MustRegister(r.steps, r.stepStatus, r.simTime, r.runSuccess, r.simulated)
	return r
}

func (r *Recorder) OnStep(t float64, status fmi.Status) {
	r.steps.Inc()
	r.stepStatus.WithLabelValues(status.String()).Inc()
	r.simTime.Set(t)
}

func (r *Recorder) OnFinish(out cosim.Outcome) {
	r.runSuccess.Set(boolGauge(out.OK()))
	r.simulated.Set(boolGauge(out.Simulated))
}

// Registry exposes the underlying registry, e.g. for tests or an HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
