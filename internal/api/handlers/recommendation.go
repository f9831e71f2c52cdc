package handlers

import (
	"net/http"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/recommendation"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
	"github.com/paycal/backend/internal/pkg/validator"
)

type RecommendationHandler struct {
	service   recommendation.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewRecommendationHandler(service recommendation.Service, log *logger.Logger, val *validator.Validator) *RecommendationHandler {
	return &RecommendationHandler{service: service, logger: log, validator: val}
}

// SaveProfile stores the caller's occupation profile
// @Summary Save occupation profile
// @Tags Recommendations
// @Accept json
// @Param request body dto.SaveProfileRequest true "Occupation profile"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Security BearerAuth
// @Router /recommendations/profile [post]
func (h *RecommendationHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.SaveProfileRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.SaveProfile(r.Context(), req.ToProfile(userID)); err != nil {
		writeError(w, h.logger, err, "Failed to save profile")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Profile saved", nil)
}

// GetProfile returns the caller's occupation profile; data is absent when none was saved
// @Summary Get occupation profile
// @Tags Recommendations
// @Produce json
// @Success 200 {object} recommendation.Profile
// @Security BearerAuth
// @Router /recommendations/profile [get]
func (h *RecommendationHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load profile")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, p)
}

// Community lists subscriptions popular in the caller's group
// @Summary Community recommendations
// @Tags Recommendations
// @Produce json
// @Success 200 {object} recommendation.Community
// @Security BearerAuth
// @Router /recommendations/community [get]
func (h *RecommendationHandler) Community(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	c, err := h.service.Community(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load recommendations")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, c)
}

// Occupations returns the static occupation list
// @Summary Occupations
// @Tags Recommendations
// @Produce json
// @Success 200 {array} recommendation.Occupation
// @Router /recommendations/occupations [get]
func (h *RecommendationHandler) Occupations(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, recommendation.Occupations())
}
