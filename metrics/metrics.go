package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry 重算相关指标
type Registry struct {
	registry *prometheus.Registry

	RecomputeTotal    *prometheus.CounterVec
	PrimitivesEmitted *prometheus.HistogramVec
}

// NewRegistry 创建独立的 prometheus 注册表
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.RecomputeTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallframe_recompute_total",
			Help: "Total number of wall geometry requests by cache result",
		},
		[]string{"result"},
	)

	r.PrimitivesEmitted = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallframe_primitives_emitted",
			Help:    "Number of primitives emitted per recomputation",
			Buckets: prometheus.ExponentialBuckets(8, 4, 6),
		},
		[]string{"kind"},
	)

	return r
}

// Gatherer 暴露给调用方做导出
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveHit 记录缓存命中
func (r *Registry) ObserveHit() {
	if r == nil {
		return
	}
	r.RecomputeTotal.WithLabelValues("hit").Inc()
}

// ObserveMiss 记录一次实际重算及其输出规模
func (r *Registry) ObserveMiss(segments, quads int) {
	if r == nil {
		return
	}
	r.RecomputeTotal.WithLabelValues("miss").Inc()
	r.PrimitivesEmitted.WithLabelValues("segment").Observe(float64(segments))
	r.PrimitivesEmitted.WithLabelValues("quad").Observe(float64(quads))
}
