package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telemetry tracks the orchestration pipeline. One instance per process,
// registered against the default prometheus registry and exposed on
// /metrics by the server.
type Telemetry struct {
	turns         *prometheus.CounterVec
	turnDuration  prometheus.Histogram
	recordsParsed prometheus.Counter
}

func New(reg prometheus.Registerer) *Telemetry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Telemetry{
		turns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "newsticker_turns_total",
			Help: "Orchestration turns by outcome.",
		}, []string{"status"}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "newsticker_turn_duration_seconds",
			Help:    "Wall time of one orchestration turn.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		recordsParsed: factory.NewCounter(prometheus.CounterOpts{
			Name: "newsticker_records_parsed_total",
			Help: "News records successfully parsed from agent replies.",
		}),
	}
}

func (t *Telemetry) ObserveTurn(start time.Time, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	t.turns.WithLabelValues(status).Inc()
	t.turnDuration.Observe(time.Since(start).Seconds())
}

func (t *Telemetry) AddRecords(n int) {
	t.recordsParsed.Add(float64(n))
}
