package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestHelpersBeforeInit 未初始化时辅助函数不能panic
func TestHelpersBeforeInit(t *testing.T) {
	var counter prometheus.Counter
	var vec *prometheus.CounterVec
	var hist prometheus.Histogram

	IncCounter(counter)
	IncCounterVec(vec, map[string]string{"reason": "x"})
	ObserveHistogram(hist, 1)
}

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不会重复注册

	if HTTPRequestsTotal == nil || OrdersCreatedTotal == nil || CacheRequestsTotal == nil {
		t.Fatal("指标未初始化")
	}
	t.Log("✅ 所有指标初始化成功")
}

func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)

	if got := getCounterValue(t, OrdersCreatedTotal) - before; got != 3 {
		t.Errorf("Counter值错误: expected=3, got=%f", got)
	}
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"reason": "bad_request"}
	before := getCounterVecValue(t, OrdersFailedTotal, labels)

	IncCounterVec(OrdersFailedTotal, labels)
	IncCounterVec(OrdersFailedTotal, map[string]string{"reason": "not_found"})
	IncCounterVec(OrdersFailedTotal, labels)

	if got := getCounterVecValue(t, OrdersFailedTotal, labels) - before; got != 2 {
		t.Errorf("CounterVec值错误: expected=2, got=%f", got)
	}
}

func TestGauge(t *testing.T) {
	InitMetrics()

	before := getGaugeValue(t, HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	if got := getGaugeValue(t, HTTPRequestsInProgress) - before; got != 1 {
		t.Errorf("Gauge值错误: expected=1, got=%f", got)
	}
	DecGauge(HTTPRequestsInProgress)
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	before := getHistogramCount(t, OrderAmount)
	ObserveHistogram(OrderAmount, 3000)
	ObserveHistogram(OrderAmount, 53000)

	if got := getHistogramCount(t, OrderAmount) - before; got != 2 {
		t.Errorf("Histogram观测次数错误: expected=2, got=%d", got)
	}
}

func TestHistogramVec(t *testing.T) {
	InitMetrics()

	labels := map[string]string{"method": "GET", "path": "/api/v1/orders"}
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.05)
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.1)
	ObserveHistogramVec(HTTPRequestDuration, map[string]string{"method": "POST", "path": "/api/v1/orders"}, 0.2)

	if got := getHistogramVecCount(t, HTTPRequestDuration, labels); got != 2 {
		t.Errorf("HistogramVec观测次数错误: expected=2, got=%d", got)
	}
}

// =========================================
// 读取指标值
// =========================================

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("读取Counter值失败: %v", err)
	}
	return metric.Counter.GetValue()
}

func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	return getCounterValue(t, counterVec.With(labels))
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	var metric dto.Metric
	if err := gauge.Write(&metric); err != nil {
		t.Fatalf("读取Gauge值失败: %v", err)
	}
	return metric.Gauge.GetValue()
}

func getHistogramCount(t *testing.T, histogram prometheus.Histogram) uint64 {
	var metric dto.Metric
	if err := histogram.Write(&metric); err != nil {
		t.Fatalf("读取Histogram值失败: %v", err)
	}
	return metric.Histogram.GetSampleCount()
}

func getHistogramVecCount(t *testing.T, histogramVec *prometheus.HistogramVec, labels map[string]string) uint64 {
	return getHistogramCount(t, histogramVec.With(labels).(prometheus.Histogram))
}
