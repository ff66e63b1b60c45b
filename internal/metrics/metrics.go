// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "splitbill"

// RPCMetrics groups collectors for Connect RPC traffic.
type RPCMetrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

// NewRPCMetrics registers and returns RPC collectors. A nil registerer means
// the default one. Registering twice reuses the existing collectors.
func NewRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &RPCMetrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Total number of RPCs handled, by procedure and Connect code.",
		}, []string{"procedure", "code"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_ms",
			Help:      "RPC latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000, 15000},
		}, []string{"procedure"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rpc_in_flight",
			Help:      "Current number of in-flight RPCs.",
		}),
	}
	registerCounter(reg, &m.ReqTotal)
	registerHistogram(reg, &m.ReqDur)
	registerGauge(reg, &m.InFlight)
	return m
}

// SplitMetrics groups collectors for bill calculations and receipt scans.
type SplitMetrics struct {
	Summaries    *prometheus.CounterVec
	UnsplitItems *prometheus.HistogramVec
	Scans        *prometheus.CounterVec
}

// NewSplitMetrics registers and returns calculation collectors.
func NewSplitMetrics(reg prometheus.Registerer) *SplitMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &SplitMetrics{
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_recomputations_total",
			Help:      "Bill summaries computed, by whether adjustments could be distributed.",
		}, []string{"distributed"}),
		UnsplitItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "unsplit_items",
			Help:      "Number of unassigned items per computed summary.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25},
		}, []string{"currency"}),
		Scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_scans_total",
			Help:      "Receipt scans, by result (ok, cached, error).",
		}, []string{"result"}),
	}
	registerCounter(reg, &m.Summaries)
	registerHistogram(reg, &m.UnsplitItems)
	registerCounter(reg, &m.Scans)
	return m
}

// ObserveSummary records one summary computation.
func (m *SplitMetrics) ObserveSummary(currency string, distributed bool, unsplit int) {
	if m == nil {
		return
	}
	m.Summaries.WithLabelValues(fmt.Sprint(distributed)).Inc()
	m.UnsplitItems.WithLabelValues(currency).Observe(float64(unsplit))
}

// ObserveScan records one receipt scan outcome.
func (m *SplitMetrics) ObserveScan(success, cached bool) {
	if m == nil {
		return
	}
	result := "error"
	switch {
	case success && cached:
		result = "cached"
	case success:
		result = "ok"
	}
	m.Scans.WithLabelValues(result).Inc()
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func registerCounter(reg prometheus.Registerer, c **prometheus.CounterVec) {
	if err := reg.Register(*c); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(fmt.Errorf("register counter: %w", err))
		}
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			*c = existing
		}
	}
}

func registerHistogram(reg prometheus.Registerer, h **prometheus.HistogramVec) {
	if err := reg.Register(*h); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(fmt.Errorf("register histogram: %w", err))
		}
		if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
			*h = existing
		}
	}
}

func registerGauge(reg prometheus.Registerer, g *prometheus.Gauge) {
	if err := reg.Register(*g); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			panic(fmt.Errorf("register gauge: %w", err))
		}
		if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
			*g = existing
		}
	}
}
