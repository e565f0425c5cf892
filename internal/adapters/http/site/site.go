// Package site serves the prediction page: the form, the submitted result and
// the embedded theme assets.
package site

import (
	"context"
	"net/http"

	"github.com/okian/f1predict/internal/adapters/http/middleware"
	service "github.com/okian/f1predict/internal/app"
	"github.com/okian/f1predict/internal/domain/record"
	"github.com/okian/f1predict/internal/inference"
	"github.com/okian/f1predict/pkg/logger"
)

// maxFormBytes bounds a form submission body.
const maxFormBytes = 64 << 10

// Evaluator runs one prediction for a submitted record.
type Evaluator interface {
	Evaluate(ctx context.Context, rec record.Record) (service.Outcome, error)
	Model() inference.Info
}

// Option applies a configuration option to the PageHandler.
type Option func(*PageHandler)

// WithLogger sets a custom logger for the page handler.
func WithLogger(l logger.Logger) Option {
	return func(h *PageHandler) {
		if l != nil {
			h.logger = l
		}
	}
}

// Register attaches the page, the form endpoint and the static assets to mux.
func Register(_ context.Context, mux *http.ServeMux, eval Evaluator, opts ...Option) {
	if mux == nil {
		panic("mux is nil")
	}
	if eval == nil {
		panic("evaluator is nil")
	}

	h := NewPageHandler(eval, opts...)
	mux.HandleFunc("/", middleware.Metrics(h.HandleIndex, "page"))
	mux.HandleFunc("/predict", middleware.Metrics(h.HandlePredict, "predict"))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(FS())))
}
