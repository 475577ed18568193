// Package metrics defines the Prometheus collectors exported by the travel
// agency backend. Collectors are registered on a caller-supplied registry so
// tests can use a fresh one per case.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "travel_agency"

// Persistence records what the JSON store loads, skips, and fails to write.
// A nil *Persistence is valid and records nothing, so the store can run
// without metrics in tests.
type Persistence struct {
	loaded       *prometheus.GaugeVec
	skipped      *prometheus.CounterVec
	fileErrors   *prometheus.CounterVec
	saveDuration prometheus.Histogram
}

// NewPersistence creates the persistence collectors and registers them on reg.
func NewPersistence(reg prometheus.Registerer) *Persistence {
	m := &Persistence{
		loaded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records_loaded",
			Help:      "Records held in each collection after the last load.",
		}, []string{"collection"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "records_skipped_total",
			Help:      "Records dropped during load because a reference or field did not resolve.",
		}, []string{"collection", "reason"}),
		fileErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "file_errors_total",
			Help:      "I/O or parse failures per data file and operation.",
		}, []string{"collection", "op"}),
		saveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "save_duration_seconds",
			Help:      "Time taken to write all five data files.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	reg.MustRegister(m.loaded, m.skipped, m.fileErrors, m.saveDuration)
	return m
}

// Loaded sets the record count for a collection.
func (m *Persistence) Loaded(collection string, n int) {
	if m == nil {
		return
	}
	m.loaded.WithLabelValues(collection).Set(float64(n))
}

// Skipped counts one record dropped during load.
func (m *Persistence) Skipped(collection, reason string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(collection, reason).Inc()
}

// FileError counts one failed read or write of a data file.
func (m *Persistence) FileError(collection, op string) {
	if m == nil {
		return
	}
	m.fileErrors.WithLabelValues(collection, op).Inc()
}

// ObserveSave records the duration of a full save.
func (m *Persistence) ObserveSave(d time.Duration) {
	if m == nil {
		return
	}
	m.saveDuration.Observe(d.Seconds())
}
