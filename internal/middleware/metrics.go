package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/metrics"
)

// MetricsInterceptor records request counts, latency and in-flight RPCs.
func MetricsInterceptor(m *metrics.RPCMetrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			m.InFlight.Inc()
			start := time.Now()

			resp, err := next(ctx, req)

			m.InFlight.Dec()
			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.ReqTotal.WithLabelValues(procedure, code).Inc()
			m.ReqDur.WithLabelValues(procedure).Observe(metrics.DurationMillis(time.Since(start)))
			return resp, err
		}
	}
}
