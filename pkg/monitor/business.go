package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	TxSubmittedTotal      *prometheus.CounterVec
	TxPushTotal           *prometheus.CounterVec
	TxDeletedTotal        *prometheus.CounterVec
	ExplorerRequestsTotal *prometheus.CounterVec
	RebroadcastDuration   prometheus.Histogram
}

// Business 全局业务指标; 未调用 Init 时只是不会被 /metrics 暴露
var Business = &BusinessMetrics{
	TxSubmittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mempush_tx_submitted_total",
		Help: "The total number of stored raw transactions",
	}, []string{"network"}),
	TxPushTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mempush_tx_push_total",
		Help: "Push attempts by resulting status",
	}, []string{"network", "status"}),
	TxDeletedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mempush_tx_deleted_total",
		Help: "The total number of deleted transactions",
	}, []string{"network"}),
	ExplorerRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mempush_explorer_requests_total",
		Help: "Requests sent to the mempool explorer API",
	}, []string{"network", "endpoint", "outcome"}),
	RebroadcastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mempush_rebroadcast_job_duration_seconds",
		Help:    "Duration of rebroadcast jobs",
		Buckets: prometheus.DefBuckets,
	}),
}

func (b *BusinessMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		b.TxSubmittedTotal,
		b.TxPushTotal,
		b.TxDeletedTotal,
		b.ExplorerRequestsTotal,
		b.RebroadcastDuration,
	}
}
