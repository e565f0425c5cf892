package api

import (
	"net/http"

	"github.com/okian/f1predict/internal/inference"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	model ModelDescriber
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(model ModelDescriber) *HealthHandler {
	return &HealthHandler{model: model}
}

type healthResponse struct {
	Status string         `json:"status"`
	Model  inference.Info `json:"model"`
}

// HandleHealth handles GET /healthz requests. The process only serves once
// the model is loaded, so a response always reports it.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Model: h.model.Model()})
}
