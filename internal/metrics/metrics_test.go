package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSplitMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSplitMetrics(reg)

	m.ObserveSummary("USD", true, 0)
	m.ObserveSummary("USD", false, 2)
	m.ObserveSummary("JPY", true, 1)

	if got := testutil.ToFloat64(m.Summaries.WithLabelValues("true")); got != 2 {
		t.Errorf("distributed summaries = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Summaries.WithLabelValues("false")); got != 1 {
		t.Errorf("undistributed summaries = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.UnsplitItems); got != 2 {
		t.Errorf("unsplit histogram series = %d, want 2", got)
	}

	m.ObserveScan(true, false)
	m.ObserveScan(true, true)
	m.ObserveScan(false, false)
	for _, result := range []string{"ok", "cached", "error"} {
		if got := testutil.ToFloat64(m.Scans.WithLabelValues(result)); got != 1 {
			t.Errorf("scans{%s} = %v, want 1", result, got)
		}
	}
}

func TestRegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewRPCMetrics(reg)
	second := NewRPCMetrics(reg)

	first.ReqTotal.WithLabelValues("/x", "ok").Inc()
	if got := testutil.ToFloat64(second.ReqTotal.WithLabelValues("/x", "ok")); got != 1 {
		t.Errorf("second registration should share collectors, got %v", got)
	}
}

func TestNilSplitMetrics(t *testing.T) {
	var m *SplitMetrics
	m.ObserveSummary("USD", true, 0)
	m.ObserveScan(true, false)
}

func TestDurationMillis(t *testing.T) {
	if got := DurationMillis(1500 * time.Microsecond); got != 1.5 {
		t.Errorf("DurationMillis = %v, want 1.5", got)
	}
}
