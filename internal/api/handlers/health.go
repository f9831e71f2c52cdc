package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db     db.DB
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(d db.DB, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:     d,
		logger: log,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /health [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Paycal API is running",
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Description Check that the backing store answers
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.ErrorWithErr(err, "Database ping failed")
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database connection failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": h.db.Dialect().Name(),
	})
}
