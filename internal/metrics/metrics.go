package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scottypickering/slushpool/internal/logger"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	shutdownTimeout = 5 * time.Second
)

var (
	// total number of API fetches, by endpoint and outcome
	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slushwatch_fetch_total",
			Help: "Total number of pool API fetches.",
		},
		[]string{"endpoint", "outcome"},
	)

	// fetch latency histogram
	fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slushwatch_fetch_duration_seconds",
			Help:    "Histogram of pool API fetch latencies.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slushwatch_events_published_total",
			Help: "Total number of events accepted by at least one publisher.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(fetchTotal)
	prometheus.MustRegister(fetchDuration)
	prometheus.MustRegister(eventsPublished)
}

// ObserveFetch records the outcome and latency of one API call.
func ObserveFetch(endpoint string, err error, elapsed time.Duration) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	fetchTotal.WithLabelValues(endpoint, outcome).Inc()
	fetchDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// EventPublished counts an event delivered downstream.
func EventPublished(kind string) {
	eventsPublished.WithLabelValues(kind).Inc()
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Serve runs the metrics listener on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, log logger.Logger) error {
	if addr == "" {
		return errors.New("metrics address is empty")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// done releases the shutdown goroutine when the listener exits on its own.
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WarnObj("metrics listener shutdown failed", "error", err.Error())
		}
	}()

	log.InfoObj("metrics listener starting", "metrics_addr", addr)
	err := srv.ListenAndServe()
	close(done)
	wg.Wait()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics listener: %w", err)
	}
	return nil
}
