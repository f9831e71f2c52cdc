package handlers

import (
	"net/http"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/friend"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
	"github.com/paycal/backend/internal/pkg/validator"
)

// FriendHandler handles user search, friend requests and friendships
type FriendHandler struct {
	friends   friend.Service
	users     user.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewFriendHandler(friends friend.Service, users user.Service, log *logger.Logger, val *validator.Validator) *FriendHandler {
	return &FriendHandler{friends: friends, users: users, logger: log, validator: val}
}

// Search finds users by email or name
// @Summary Search users
// @Tags Friends
// @Produce json
// @Param query query string true "At least 2 characters"
// @Success 200 {array} user.Summary
// @Failure 400 {object} utils.ErrorResponse "Query too short"
// @Security BearerAuth
// @Router /friends/search [get]
func (h *FriendHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	found, err := h.users.Search(r.Context(), userID, r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to search users")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, found)
}

// SendRequest sends a friend request
// @Summary Send friend request
// @Tags Friends
// @Accept json
// @Produce json
// @Param request body dto.FriendRequestRequest true "Target user"
// @Success 201 {object} dto.RequestCreatedResponse
// @Failure 400 {object} utils.ErrorResponse "Self request, already friends or request exists"
// @Failure 403 {object} utils.ErrorResponse "Target does not accept requests"
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Security BearerAuth
// @Router /friends/request [post]
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.FriendRequestRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	id, err := h.friends.SendRequest(r.Context(), userID, req.ToUserID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to send friend request")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Friend request sent", dto.RequestCreatedResponse{RequestID: id})
}

// Incoming lists pending requests to the caller
// @Summary Incoming requests
// @Tags Friends
// @Produce json
// @Success 200 {array} friend.Request
// @Security BearerAuth
// @Router /friends/requests/incoming [get]
func (h *FriendHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	reqs, err := h.friends.Incoming(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list friend requests")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reqs)
}

// Outgoing lists pending requests from the caller
// @Summary Outgoing requests
// @Tags Friends
// @Produce json
// @Success 200 {array} friend.Request
// @Security BearerAuth
// @Router /friends/requests/outgoing [get]
func (h *FriendHandler) Outgoing(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	reqs, err := h.friends.Outgoing(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list friend requests")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, reqs)
}

// Accept accepts a pending request
// @Summary Accept request
// @Tags Friends
// @Param requestId path int true "Request ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Request not found"
// @Security BearerAuth
// @Router /friends/request/{requestId}/accept [post]
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "requestId")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.friends.Accept(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err, "Failed to accept friend request")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Friend request accepted", nil)
}

// Reject rejects a pending request
// @Summary Reject request
// @Tags Friends
// @Param requestId path int true "Request ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Request not found"
// @Security BearerAuth
// @Router /friends/request/{requestId}/reject [post]
func (h *FriendHandler) Reject(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "requestId")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.friends.Reject(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err, "Failed to reject friend request")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Friend request rejected", nil)
}

// List returns the caller's friends
// @Summary List friends
// @Tags Friends
// @Produce json
// @Success 200 {array} friend.Friend
// @Security BearerAuth
// @Router /friends/list [get]
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	friends, err := h.friends.List(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to list friends")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, friends)
}

// Remove ends a friendship
// @Summary Remove friend
// @Tags Friends
// @Param friendId path int true "Friend user ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Friendship not found"
// @Security BearerAuth
// @Router /friends/{friendId} [delete]
func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	friendID, appErr := pathID(r, "friendId")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.friends.Remove(r.Context(), userID, friendID); err != nil {
		writeError(w, h.logger, err, "Failed to remove friend")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Friend removed", nil)
}
