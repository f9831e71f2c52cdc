package handlers

import (
	"net/http"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/premium"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
	"github.com/paycal/backend/internal/pkg/validator"
)

// PremiumHandler manages the simulated premium purchase
type PremiumHandler struct {
	service   premium.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewPremiumHandler(service premium.Service, log *logger.Logger, val *validator.Validator) *PremiumHandler {
	return &PremiumHandler{service: service, logger: log, validator: val}
}

// Status returns the caller's premium state
// @Summary Premium status
// @Tags Premium
// @Produce json
// @Success 200 {object} premium.Status
// @Security BearerAuth
// @Router /premium/status [get]
func (h *PremiumHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	status, err := h.service.Status(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to get premium status")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, status)
}

// Features returns the plan catalogue
// @Summary Plan catalogue
// @Tags Premium
// @Produce json
// @Success 200 {object} premium.Catalogue
// @Security BearerAuth
// @Router /premium/features [get]
func (h *PremiumHandler) Features(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, h.service.Features())
}

// Subscribe activates a premium plan
// @Summary Subscribe to premium
// @Description Activates the plan and adds the premium subscription to the caller's list
// @Tags Premium
// @Accept json
// @Produce json
// @Param request body dto.SubscribePremiumRequest true "Plan"
// @Success 200 {object} premium.Activation
// @Failure 400 {object} utils.ErrorResponse "Unknown plan"
// @Security BearerAuth
// @Router /premium/subscribe [post]
func (h *PremiumHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.SubscribePremiumRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	activation, err := h.service.Subscribe(r.Context(), userID, req.PlanValue())
	if err != nil {
		writeError(w, h.logger, err, "Failed to activate premium")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Premium activated", activation)
}

// Cancel returns the caller to the free tier
// @Summary Cancel premium
// @Tags Premium
// @Success 200 {object} utils.SuccessResponse
// @Security BearerAuth
// @Router /premium/cancel [post]
func (h *PremiumHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), userID); err != nil {
		writeError(w, h.logger, err, "Failed to cancel premium")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Premium cancelled", nil)
}
