// Package server exposes a rule base over HTTP: POST /infer takes crisp
// inputs as JSON and returns the defuzzified outputs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/libp2p/go-reuseport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"example.com/fuzzy-control/base/metrics"
	"example.com/fuzzy-control/core/inference"
)

const shutdownTimeout = 5 * time.Second

type serverMetrics struct {
	reqsReceived  prometheus.Counter
	reqsServed    prometheus.Counter
	reqsFailed    prometheus.Counter
	inferDuration prometheus.Histogram
}

func newServerMetrics(r prometheus.Registerer) *serverMetrics {
	f := promauto.With(r)
	return &serverMetrics{
		reqsReceived: f.NewCounter(prometheus.CounterOpts{
			Name: metrics.ServerReqsReceivedN,
			Help: metrics.ServerReqsReceivedH,
		}),
		reqsServed: f.NewCounter(prometheus.CounterOpts{
			Name: metrics.ServerReqsServedN,
			Help: metrics.ServerReqsServedH,
		}),
		reqsFailed: f.NewCounter(prometheus.CounterOpts{
			Name: metrics.ServerReqsFailedN,
			Help: metrics.ServerReqsFailedH,
		}),
		inferDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    metrics.ServerInferDurationN,
			Help:    metrics.ServerInferDurationH,
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
}

type inferRequest struct {
	Inputs map[string]float64 `json:"inputs"`
}

type inferResponse struct {
	Outputs map[string]float64 `json:"outputs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	log    *zap.Logger
	engine *inference.Engine
	mtrcs  *serverMetrics
}

func newHandler(log *zap.Logger, engine *inference.Engine, mtrcs *serverMetrics) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()
	h := &handler{log: log, engine: engine, mtrcs: mtrcs}
	mux.HandleFunc("/infer", h.handleInfer)
	return mux
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, inference.ErrMissingInput):
		return http.StatusBadRequest
	case errors.Is(err, inference.ErrNoRuleFired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	h.mtrcs.reqsFailed.Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
}

func (h *handler) handleInfer(w http.ResponseWriter, r *http.Request) {
	h.mtrcs.reqsReceived.Inc()
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	var req inferRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.log.Info("failed to decode request body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	outputs, err := h.engine.Infer(req.Inputs)
	h.mtrcs.inferDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.log.Info("inference request failed", zap.Error(err))
		h.writeError(w, statusFromError(err), err)
		return
	}
	h.mtrcs.reqsServed.Inc()

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(inferResponse{Outputs: outputs})
	if err != nil {
		h.log.Info("failed to write response", zap.Error(err))
	}
}

// StartServer listens on listenAddr and serves inference requests until ctx
// is canceled. The listener is opened before it returns; serving happens in
// the background.
func StartServer(ctx context.Context, log *zap.Logger,
	listenAddr string, engine *inference.Engine) error {
	mtrcs := newServerMetrics(prometheus.DefaultRegisterer)
	ln, err := reuseport.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: newHandler(log, engine, mtrcs)}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to serve inference requests", zap.Error(err))
		}
	}()
	log.Info("server listening", zap.String("address", ln.Addr().String()))
	return nil
}
