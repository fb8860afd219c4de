// Package metrics holds the Prometheus collectors shared by the Lumo services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// KVFailures counts storage operations that failed and were swallowed.
	KVFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumo_kv_failures_total",
		Help: "Key-value storage operations that failed and were treated as no-ops.",
	}, []string{"backend", "op"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lumo_login_attempts_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lumo_messages_sent_total",
		Help: "User messages accepted by the chat orchestrator.",
	})

	StreamFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lumo_stream_failures_total",
		Help: "Response streams that failed and were replaced by an apology message.",
	})

	StreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lumo_stream_duration_seconds",
		Help:    "Wall time from send to the final streamed prefix.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
	})
)
