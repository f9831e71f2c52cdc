package handlers

import (
	"net/http"

	"github.com/paycal/backend/internal/domain/analytics"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
)

// AnalyticsHandler serves spending and usage reports
type AnalyticsHandler struct {
	service analytics.Service
	logger  *logger.Logger
}

func NewAnalyticsHandler(service analytics.Service, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, logger: log}
}

// Summary returns the normalised monthly total
// @Summary Spending summary
// @Description Monthly total in lira across all currencies, with subscription and underused counts
// @Tags Analytics
// @Produce json
// @Success 200 {object} analytics.Summary
// @Security BearerAuth
// @Router /analytics/summary [get]
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to compute summary")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, summary)
}

// Underused lists subscriptions unused for 30 days
// @Summary Underused subscriptions
// @Tags Analytics
// @Produce json
// @Success 200 {array} subscription.Subscription
// @Security BearerAuth
// @Router /analytics/underused [get]
func (h *AnalyticsHandler) Underused(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	subs, err := h.service.Underused(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list underused subscriptions")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, subs)
}

// Usage reports the last 30 days of usage for one subscription
// @Summary Usage statistics
// @Tags Analytics
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {object} analytics.UsageStats
// @Failure 404 {object} utils.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /analytics/usage/{id} [get]
func (h *AnalyticsHandler) Usage(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	stats, err := h.service.Usage(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "Failed to compute usage")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, stats)
}

// PriceHistory lists recorded price changes
// @Summary Price history
// @Tags Analytics
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {array} subscription.PriceChange
// @Failure 404 {object} utils.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /analytics/price-history/{id} [get]
func (h *AnalyticsHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	history, err := h.service.PriceHistory(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "Failed to get price history")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, history)
}

// Categories breaks spending down by category
// @Summary Category breakdown
// @Tags Analytics
// @Produce json
// @Success 200 {array} analytics.CategoryBreakdown
// @Security BearerAuth
// @Router /analytics/categories [get]
func (h *AnalyticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	breakdown, err := h.service.Categories(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to compute categories")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, breakdown)
}
