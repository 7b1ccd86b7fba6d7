// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics exposes the conversion and HTTP counters served on
// the preview server's /metrics endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	conversions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeopress",
		Name:      "conversions_total",
		Help:      "Number of document conversions.",
	}, []string{"root", "status"})

	conversionTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "aeopress",
		Name:      "conversion_duration_seconds",
		Help:      "Conversion duration of successful documents.",
		Buckets:   prometheus.DefBuckets,
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aeopress",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of served HTTP requests.",
	}, []string{"code", "method"})
)

// ObserveConversion records one conversion attempt. root is the
// document's root tag, empty when parsing never reached it.
func ObserveConversion(root string, err error, d time.Duration) {
	if root == "" {
		root = "unknown"
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	conversions.WithLabelValues(root, status).Inc()

	if err == nil {
		conversionTime.Observe(d.Seconds())
	}
}

// Handler returns the metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware counts served requests by status code and method.
func Middleware(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(httpRequests, next)
}
