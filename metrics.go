package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	eventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ntss_events_processed_total",
		Help: "Total number of events fully reduced.",
	})

	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ntss_events_failed_total",
		Help: "Total number of events rejected as unsupported or invalid.",
	})

	sensorsSummarized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ntss_sensors_summarized_total",
		Help: "Total number of per-sensor summary rows produced.",
	})

	eventWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ntss_event_write_duration_ms",
		Help:    "Time spent writing one reduced event to the output file.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250},
	})
)

// startMonitor exposes the processing counters on /metrics for long
// batch runs. Failures only cost the monitoring endpoint, never the run.
func startMonitor(port int) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", port)
		if VerbosityLevel > 0 {
			logger.Info(fmt.Sprintf("Monitoring endpoint on %s/metrics", addr), "monitor")
		}
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error(fmt.Sprintf("monitoring endpoint failed: %v", err))
		}
	}()
}
