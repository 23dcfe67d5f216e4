package repository

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/postkeeper/core/internal/domain/entities"
)

// Metrics holds the repository collectors. A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	gateWait   prometheus.Histogram
}

// NewMetrics creates and registers the repository collectors
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postkeeper_repository_operations_total",
				Help: "Repository operations by outcome",
			},
			[]string{"op", "result"},
		),
		gateWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "postkeeper_write_gate_wait_seconds",
				Help:    "Time mutations spend waiting for the write gate",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
	}
	reg.MustRegister(m.operations, m.gateWait)
	return m
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, resultLabel(err)).Inc()
}

func (m *Metrics) observeWait(d time.Duration) {
	if m == nil {
		return
	}
	m.gateWait.Observe(d.Seconds())
}

func resultLabel(err error) string {
	var (
		readErr  *entities.StoreReadError
		writeErr *entities.StoreWriteError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, entities.ErrPostNotFound):
		return "not_found"
	case errors.As(err, &readErr):
		return "read_error"
	case errors.As(err, &writeErr):
		return "write_error"
	default:
		return "error"
	}
}
