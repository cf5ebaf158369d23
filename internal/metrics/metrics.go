package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kingrea/qcline/internal/inspection"
	"github.com/kingrea/qcline/internal/packing"
)

// Metrics holds the station counters. Each instance owns its own registry so
// several stations (or tests) never collide on collector names.
type Metrics struct {
	registry *prometheus.Registry

	PartsRegistered *prometheus.CounterVec
	Rejections      *prometheus.CounterVec
	PartsRemoved    *prometheus.CounterVec
	BoxesSealed     prometheus.Counter
	OpenBoxParts    prometheus.Gauge
}

// New creates the collectors labelled with the station name.
func New(station string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"station": station}
	m := &Metrics{
		registry: reg,
		PartsRegistered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "qcline_parts_registered_total",
				Help:        "Parts registered, by verdict",
				ConstLabels: labels,
			},
			[]string{"verdict"},
		),
		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "qcline_rejections_total",
				Help:        "Rejection reasons recorded; a part can count toward several reasons",
				ConstLabels: labels,
			},
			[]string{"reason"},
		),
		PartsRemoved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "qcline_parts_removed_total",
				Help:        "Parts removed from the registry, by where they were packed",
				ConstLabels: labels,
			},
			[]string{"location"},
		),
		BoxesSealed: factory.NewCounter(prometheus.CounterOpts{
			Name:        "qcline_boxes_sealed_total",
			Help:        "Boxes sealed after reaching capacity",
			ConstLabels: labels,
		}),
		OpenBoxParts: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "qcline_open_box_parts",
			Help:        "Parts currently in the open box",
			ConstLabels: labels,
		}),
	}
	return m
}

// Registry exposes the underlying gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRegistration counts a classified part and its reasons.
func (m *Metrics) ObserveRegistration(verdict inspection.Verdict) {
	if m == nil {
		return
	}
	if verdict.Accepted {
		m.PartsRegistered.WithLabelValues("accepted").Inc()
		return
	}
	m.PartsRegistered.WithLabelValues("rejected").Inc()
	for _, reason := range verdict.Reasons {
		m.Rejections.WithLabelValues(string(reason)).Inc()
	}
}

// ObserveRemoval counts a removal by where the part was packed.
func (m *Metrics) ObserveRemoval(status packing.Status) {
	if m == nil {
		return
	}
	location := "unpacked"
	switch status {
	case packing.RemovedFromOpenBox:
		location = "open_box"
	case packing.HistoricalBoxAffected:
		location = "sealed_box"
	}
	m.PartsRemoved.WithLabelValues(location).Inc()
}

// ObserveSeal counts a sealed box.
func (m *Metrics) ObserveSeal() {
	if m == nil {
		return
	}
	m.BoxesSealed.Inc()
}

// SetOpenBox records the open box fill level.
func (m *Metrics) SetOpenBox(size int) {
	if m == nil {
		return
	}
	m.OpenBoxParts.Set(float64(size))
}

// WriteTextfile writes every collector in the text exposition format so a
// node exporter textfile collector can pick it up.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("metrics: ensure dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}
