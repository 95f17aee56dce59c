// Package metrics 提供基于Prometheus的指标收集
//
// 指标分组：
//   - HTTP：请求总数、耗时、处理中的请求数
//   - 订单：创建成功/失败、取消、金额分布、创建耗时
//   - 缓存：命中/未命中
//   - 限流：被拒绝的请求数
//   - 消息队列：发布/消费次数、处理耗时
//
// 使用方式：
//
//	metrics.InitMetrics()                      // main中初始化一次
//	metrics.IncCounter(metrics.OrdersCreatedTotal)
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 未初始化时所有辅助函数都是空操作，单元测试无需准备指标。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// ========== HTTP ==========

	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	// ========== 订单 ==========

	OrdersCreatedTotal    prometheus.Counter
	OrdersFailedTotal     *prometheus.CounterVec
	OrdersCancelledTotal  prometheus.Counter
	OrderCreationDuration prometheus.Histogram
	OrderAmount           prometheus.Histogram

	// ========== 缓存与限流 ==========

	CacheRequestsTotal     *prometheus.CounterVec
	RateLimitRejectedTotal *prometheus.CounterVec

	// ========== 消息队列 ==========

	MessagesPublishedTotal    *prometheus.CounterVec
	MessagesConsumedTotal     *prometheus.CounterVec
	MessageProcessingDuration prometheus.Histogram
)

// InitMetrics 注册所有指标（重复调用无副作用）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		OrdersCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "订单创建总数",
			},
		)

		OrdersFailedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_failed_total",
				Help: "订单创建失败总数",
			},
			[]string{"reason"}, // 错误码：bad_request/not_found/internal_error...
		)

		OrdersCancelledTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_cancelled_total",
				Help: "订单取消总数",
			},
		)

		OrderCreationDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_creation_duration_seconds",
				Help:    "订单创建耗时（秒）",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		)

		OrderAmount = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_final_amount",
				Help:    "订单实付金额分布",
				Buckets: []float64{10000, 30000, 50000, 100000, 300000, 1000000},
			},
		)

		CacheRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_requests_total",
				Help: "缓存访问次数",
			},
			[]string{"prefix", "result"}, // result: hit/miss/error
		)

		RateLimitRejectedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_rejected_total",
				Help: "被限流拒绝的请求数",
			},
			[]string{"limit"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "消息发布总数",
			},
			[]string{"exchange", "routing_key", "result"},
		)

		MessagesConsumedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_consumed_total",
				Help: "消息消费总数",
			},
			[]string{"queue", "result"},
		)

		MessageProcessingDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "message_processing_duration_seconds",
				Help:    "消息处理耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
			},
		)
	})
}

// =========================================
// 辅助函数（指标未初始化时为空操作）
// =========================================

func IncCounter(counter prometheus.Counter) {
	if counter != nil {
		counter.Inc()
	}
}

func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter != nil {
		counter.With(labels).Inc()
	}
}

func IncGauge(gauge prometheus.Gauge) {
	if gauge != nil {
		gauge.Inc()
	}
}

func DecGauge(gauge prometheus.Gauge) {
	if gauge != nil {
		gauge.Dec()
	}
}

func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram != nil {
		histogram.Observe(value)
	}
}

func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram != nil {
		histogram.With(labels).Observe(value)
	}
}
