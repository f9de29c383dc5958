// Package metrics declares the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tinig_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tinig_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinig_rate_limit_hits_total",
		Help: "Total rate limit rejections",
	})
)

// Engine metrics.
var (
	Transliterations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tinig_transliterations_total",
		Help: "Transliteration requests by source (api, speech)",
	}, []string{"source"})

	TransliterationLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tinig_transliteration_input_chars",
		Help:    "Input length of transliteration requests in characters",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)

// ASR collaborator metrics.
var (
	ASRRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tinig_asr_requests_total",
		Help: "Speech recognition requests by result",
	}, []string{"result"})

	ASRLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tinig_asr_duration_seconds",
		Help:    "Speech recognition call duration in seconds",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	})
)

// Database pool gauges, refreshed periodically by cmd/web.
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tinig_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tinig_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tinig_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})
)
