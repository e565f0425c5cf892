// Package api registers the operational HTTP routes: health and metrics.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/f1predict/internal/adapters/http/middleware"
	"github.com/okian/f1predict/internal/inference"
	"github.com/okian/f1predict/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ModelDescriber reports the loaded model.
type ModelDescriber interface {
	Model() inference.Info
}

// Server wires the operational routes.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler http.Handler
}

// NewServer creates a new API server with all handlers.
func NewServer(model ModelDescriber) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(model),
		metricsHandler: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// Register attaches all operational routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", middleware.Metrics(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", s.metricsHandler)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
