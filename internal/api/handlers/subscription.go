package handlers

import (
	"net/http"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/subscription"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
	"github.com/paycal/backend/internal/pkg/validator"
)

// SubscriptionHandler handles subscription CRUD and usage logging
type SubscriptionHandler struct {
	service   subscription.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewSubscriptionHandler(service subscription.Service, log *logger.Logger, val *validator.Validator) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the caller's subscriptions
// @Summary List subscriptions
// @Description Newest first
// @Tags Subscriptions
// @Produce json
// @Success 200 {array} subscription.Subscription
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	subs, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list subscriptions")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, subs)
}

// Get returns one subscription
// @Summary Get subscription
// @Tags Subscriptions
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {object} subscription.Subscription
// @Failure 404 {object} utils.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	sub, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "Failed to get subscription")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, sub)
}

// Create adds a subscription
// @Summary Create subscription
// @Description Free accounts are capped; the 403 response carries upgrade details
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body dto.CreateSubscriptionRequest true "Subscription"
// @Success 201 {object} subscription.Subscription
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 403 {object} utils.ErrorResponse "Free-tier limit reached"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *SubscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	sub, err := h.service.Create(r.Context(), userID, req.ToSubscription())
	if err != nil {
		writeError(w, h.logger, err, "Failed to create subscription")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, sub)
}

// Update applies a partial update
// @Summary Update subscription
// @Description A price change is recorded in the price history
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path int true "Subscription ID"
// @Param request body dto.UpdateSubscriptionRequest true "Fields to change"
// @Success 200 {object} subscription.Subscription
// @Failure 400 {object} utils.ErrorResponse "No fields to update"
// @Failure 404 {object} utils.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id} [put]
func (h *SubscriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.UpdateSubscriptionRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	sub, err := h.service.Update(r.Context(), userID, id, req.ToUpdate())
	if err != nil {
		writeError(w, h.logger, err, "Failed to update subscription")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, sub)
}

// Delete removes a subscription
// @Summary Delete subscription
// @Tags Subscriptions
// @Param id path int true "Subscription ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id} [delete]
func (h *SubscriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err, "Failed to delete subscription")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Subscription deleted", nil)
}

// LogUsage records that the subscription was used
// @Summary Log usage
// @Tags Subscriptions
// @Accept json
// @Param id path int true "Subscription ID"
// @Param request body dto.LogUsageRequest false "Usage time"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id}/usage [post]
func (h *SubscriptionHandler) LogUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req dto.LogUsageRequest
	if appErr := decodeOptional(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.LogUsage(r.Context(), userID, id, req.UsedAt); err != nil {
		writeError(w, h.logger, err, "Failed to log usage")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Usage logged", nil)
}
