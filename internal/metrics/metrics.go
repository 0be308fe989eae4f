// Package metrics defines the Prometheus collectors exported by the
// estimator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Estimate submissions
	EstimatesSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lzplanner",
		Name:      "estimates_submitted_total",
		Help:      "Total number of estimate submissions accepted",
	}, []string{"size"})

	EstimateFirstYearUSD = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lzplanner",
		Name:      "estimate_first_year_usd",
		Help:      "Distribution of submitted first-year total estimates in USD",
		Buckets:   prometheus.ExponentialBuckets(1000, 2, 12),
	})

	EstimatesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lzplanner",
		Name:      "estimates_rejected_total",
		Help:      "Total number of estimate submissions rejected at the boundary",
	}, []string{"reason"}) // "unknown_size", "validation", "malformed"

	StoredSubmissions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lzplanner",
		Name:      "stored_submissions",
		Help:      "Number of submissions currently held by the store",
	})

	// Live pricing overlay
	PricingRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lzplanner",
		Name:      "pricing_refresh_total",
		Help:      "Total pricing cache refresh attempts",
	}, []string{"outcome"}) // "ok", "error", "empty"

	PricingFallbackActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lzplanner",
		Name:      "pricing_fallback_active",
		Help:      "1 when feature pricing is served from static catalog values only",
	})

	PricingLastLiveUpdate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lzplanner",
		Name:      "pricing_last_live_update_timestamp",
		Help:      "Unix timestamp of the last successful live pricing refresh",
	})
)
