package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	encodeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "crsat",
		Name:      "encode_duration_seconds",
		Help:      "Time spent building the Instance Index and running the constraint encoders.",
	}, []string{"dataset"})

	clausesEmitted = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "crsat",
		Name:      "clauses_emitted",
		Help:      "Distinct clauses accepted by the Clause Sink, by encoder.",
	}, []string{"dataset", "encoder"})

	auxVariables = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "crsat",
		Name:      "auxiliary_variables",
		Help:      "Auxiliary literals allocated beyond the Assignment bijection.",
	}, []string{"dataset"})
)

// serveMetrics starts a background HTTP server exposing /metrics and
// blocks until ctx is canceled. Callers run it in its own goroutine.
func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Info("metrics server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
