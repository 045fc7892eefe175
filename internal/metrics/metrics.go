// Package metrics exposes the current sample, classification and engine
// activity as Prometheus metrics. Only the latest values are kept.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Guliveer/tuxtray/internal/models"
)

// Metrics groups every collector the application updates.
type Metrics struct {
	CPUPercent    prometheus.Gauge
	RAMPercent    prometheus.Gauge
	NetworkKbps   prometheus.Gauge
	OverallStress prometheus.Gauge

	// State is 1 for the current label and 0 for every label seen before.
	State *prometheus.GaugeVec

	StateTransitions *prometheus.CounterVec
	SamplerErrors    *prometheus.CounterVec
	FramesRendered   prometheus.Counter
	Polls            prometheus.Counter

	mu        sync.Mutex
	lastMode  string
	lastState string
}

// New registers the collectors on reg. A nil reg uses a private registry
// that is not exported anywhere.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)

	return &Metrics{
		CPUPercent: f.NewGauge(prometheus.GaugeOpts{
			Name: "tuxtray_cpu_percent",
			Help: "Processor load reported by the last sample.",
		}),
		RAMPercent: f.NewGauge(prometheus.GaugeOpts{
			Name: "tuxtray_ram_percent",
			Help: "Memory usage reported by the last sample.",
		}),
		NetworkKbps: f.NewGauge(prometheus.GaugeOpts{
			Name: "tuxtray_network_kbps",
			Help: "Combined network throughput in KB/s from the last sample.",
		}),
		OverallStress: f.NewGauge(prometheus.GaugeOpts{
			Name: "tuxtray_overall_stress",
			Help: "Mean of the normalized cpu, ram and network stress (0-100).",
		}),
		State: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tuxtray_state",
			Help: "Current classification label (1 = active).",
		}, []string{"mode", "state"}),
		StateTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tuxtray_state_transitions_total",
			Help: "Number of times the classification label changed.",
		}, []string{"to"}),
		SamplerErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tuxtray_sampler_errors_total",
			Help: "Failed metric reads by metric.",
		}, []string{"metric"}),
		FramesRendered: f.NewCounter(prometheus.CounterOpts{
			Name: "tuxtray_frames_rendered_total",
			Help: "Frames pushed to the display.",
		}),
		Polls: f.NewCounter(prometheus.CounterOpts{
			Name: "tuxtray_polls_total",
			Help: "Completed sample and classify cycles.",
		}),
	}
}

// SamplerFailure implements collector.FailureRecorder.
func (m *Metrics) SamplerFailure(metric string) {
	m.SamplerErrors.WithLabelValues(metric).Inc()
}

// ObserveSample records the latest sample and stress.
func (m *Metrics) ObserveSample(s models.TelemetrySample, overallStress float64) {
	m.CPUPercent.Set(s.CPUPercent)
	m.RAMPercent.Set(s.RAMPercent)
	m.NetworkKbps.Set(s.NetworkKbps)
	m.OverallStress.Set(overallStress)
	m.Polls.Inc()
}

// ObserveState marks state as the current label for mode and clears the
// previous one. A change of label counts as a transition.
func (m *Metrics) ObserveState(mode, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastState != "" && (m.lastState != state || m.lastMode != mode) {
		m.State.WithLabelValues(m.lastMode, m.lastState).Set(0)
		if m.lastState != state {
			m.StateTransitions.WithLabelValues(state).Inc()
		}
	}
	m.State.WithLabelValues(mode, state).Set(1)
	m.lastMode = mode
	m.lastState = state
}
