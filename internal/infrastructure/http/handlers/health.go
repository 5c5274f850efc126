package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// HealthHandlers exposes liveness endpoints
type HealthHandlers struct {
	version string
	logger  *zap.Logger
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(version string, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{
		version: version,
		logger:  logger,
	}
}

// Health handles GET /health
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}
