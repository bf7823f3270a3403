package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avwxlog_api_calls_total",
			Help: "Total AVWX API calls",
		},
		[]string{"station", "report", "status"},
	)

	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "avwxlog_api_latency_seconds",
			Help:    "AVWX API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"station", "report"},
	)

	RowsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avwxlog_rows_written_total",
			Help: "Total CSV rows appended",
		},
		[]string{"report"},
	)

	ReportFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avwxlog_report_failures_total",
			Help: "Fetch, expansion, or write failures by airport and report kind",
		},
		[]string{"airport", "report"},
	)
)
