package handlers

import (
	"net/http"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/profile"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
	"github.com/paycal/backend/internal/pkg/validator"
)

// ProfileHandler handles profiles and privacy settings
type ProfileHandler struct {
	service   profile.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewProfileHandler(service profile.Service, log *logger.Logger, val *validator.Validator) *ProfileHandler {
	return &ProfileHandler{service: service, logger: log, validator: val}
}

// Me returns the caller's profile
// @Summary Own profile
// @Tags Profile
// @Produce json
// @Success 200 {object} profile.Profile
// @Security BearerAuth
// @Router /profile/me [get]
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Me(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load profile")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, p)
}

// Rename changes the caller's display name
// @Summary Update name
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateNameRequest true "New name"
// @Success 200 {object} dto.NameResponse
// @Failure 400 {object} utils.ErrorResponse "Name too short"
// @Security BearerAuth
// @Router /profile/me [put]
func (h *ProfileHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateNameRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	name, err := h.service.Rename(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, h.logger, err, "Failed to update name")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.NameResponse{Name: name})
}

// View returns another user's profile
// @Summary View profile
// @Tags Profile
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} profile.PublicProfile
// @Failure 403 {object} utils.ErrorResponse "Profile is private"
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /profile/{userId} [get]
func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := callerID(w, r)
	if !ok {
		return
	}
	userID, appErr := pathID(r, "userId")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	p, err := h.service.View(r.Context(), viewerID, userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load profile")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, p)
}

// Settings returns the caller's privacy settings
// @Summary Privacy settings
// @Tags Profile
// @Produce json
// @Success 200 {object} profile.Settings
// @Security BearerAuth
// @Router /profile/settings/privacy [get]
func (h *ProfileHandler) Settings(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	settings, err := h.service.Settings(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load privacy settings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, settings)
}

// UpdateSettings merges a partial privacy change
// @Summary Update privacy settings
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body profile.SettingsUpdate true "Fields to change"
// @Success 200 {object} profile.Settings
// @Security BearerAuth
// @Router /profile/settings/privacy [put]
func (h *ProfileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req profile.SettingsUpdate
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	settings, err := h.service.UpdateSettings(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.logger, err, "Failed to update privacy settings")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, settings)
}
