// Package metrics holds the Prometheus counters exported by the bot.
package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ThreadsCreated    *prometheus.CounterVec
	ThreadCollisions  *prometheus.CounterVec
	CommandErrors     *prometheus.CounterVec
	TransportRestarts *prometheus.CounterVec
}

// New registers the counters on reg. A nil reg uses the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		ThreadsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_threads_created_total",
			Help: "Number of daily threads created",
		}, []string{"series"}),
		ThreadCollisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_thread_collisions_total",
			Help: "Number of requests answered with an already existing thread",
		}, []string{"series"}),
		CommandErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_command_errors_total",
			Help: "Number of commands rejected or failed, by kind",
		}, []string{"kind"}),
		TransportRestarts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wordle_transport_restarts_total",
			Help: "Number of gateway restart attempts, by result",
		}, []string{"result"}),
	}
}

// Serve exposes the default registry on addr under /metrics. It blocks until
// the server fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("Serving metrics", "addr", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
