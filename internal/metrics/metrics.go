// Package metrics defines the terminal's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_http_requests_total",
		Help: "Requests served on the local UI API.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_http_request_duration_seconds",
		Help:    "Latency of local UI API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	OfflineQueuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_offline_transactions_queued_total",
		Help: "Transactions appended to the offline queue.",
	})

	SyncTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_sync_transactions_total",
		Help: "Per-transaction sync outcomes.",
	}, []string{"outcome"})
)
