package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/invite"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
)

// InviteHandler handles shareable invite links
type InviteHandler struct {
	service invite.Service
	logger  *logger.Logger
}

func NewInviteHandler(service invite.Service, log *logger.Logger) *InviteHandler {
	return &InviteHandler{service: service, logger: log}
}

// Token returns the caller's invite link
// @Summary Invite token
// @Tags Invite
// @Produce json
// @Success 200 {object} invite.Invite
// @Security BearerAuth
// @Router /invite/token [get]
func (h *InviteHandler) Token(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	inv, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to get invite")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, inv)
}

// Resolve looks up the owner of an invite token
// @Summary Resolve invite
// @Tags Invite
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} invite.Inviter
// @Failure 400 {object} utils.ErrorResponse "Own invite"
// @Failure 404 {object} utils.ErrorResponse "Invite not found"
// @Security BearerAuth
// @Router /invite/user/{token} [get]
func (h *InviteHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	inviter, err := h.service.Resolve(r.Context(), userID, chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to resolve invite")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, inviter)
}

// Accept sends a friend request to the invite owner
// @Summary Accept invite
// @Tags Invite
// @Produce json
// @Param token path string true "Invite token"
// @Success 201 {object} dto.RequestCreatedResponse
// @Failure 400 {object} utils.ErrorResponse "Own invite, already friends or request exists"
// @Failure 404 {object} utils.ErrorResponse "Invite not found"
// @Security BearerAuth
// @Router /invite/accept/{token} [post]
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	id, err := h.service.Accept(r.Context(), userID, chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to accept invite")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Friend request sent", dto.RequestCreatedResponse{RequestID: id})
}
