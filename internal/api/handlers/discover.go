package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/activity"
	"github.com/paycal/backend/internal/domain/featured"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
)

// DiscoverHandler serves the social feed and weekly featured entries
type DiscoverHandler struct {
	activity activity.Service
	featured featured.Service
	logger   *logger.Logger
}

func NewDiscoverHandler(activitySvc activity.Service, featuredSvc featured.Service, log *logger.Logger) *DiscoverHandler {
	return &DiscoverHandler{activity: activitySvc, featured: featuredSvc, logger: log}
}

// Feed lists friends' activity
// @Summary Friends feed
// @Tags Discover
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} activity.Entry
// @Security BearerAuth
// @Router /discover/feed [get]
func (h *DiscoverHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	page := utils.ParsePaginationParams(r)

	entries, err := h.activity.Feed(r.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load feed")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, entries)
}

// Popular lists subscriptions most added by friends
// @Summary Popular among friends
// @Tags Discover
// @Produce json
// @Success 200 {array} activity.PopularItem
// @Security BearerAuth
// @Router /discover/popular [get]
func (h *DiscoverHandler) Popular(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	items, err := h.activity.Popular(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load popular subscriptions")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, items)
}

// Trending lists subscriptions most added platform-wide
// @Summary Trending
// @Tags Discover
// @Produce json
// @Success 200 {array} activity.TrendingItem
// @Security BearerAuth
// @Router /discover/trending [get]
func (h *DiscoverHandler) Trending(w http.ResponseWriter, r *http.Request) {
	items, err := h.activity.Trending(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to load trending subscriptions")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, items)
}

// Suggestions lists friends' subscriptions in a category
// @Summary Category suggestions
// @Tags Discover
// @Produce json
// @Param category path string true "Category"
// @Success 200 {array} activity.Suggestion
// @Security BearerAuth
// @Router /discover/suggestions/{category} [get]
func (h *DiscoverHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	items, err := h.activity.Suggestions(r.Context(), userID, chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, h.logger, err, "Failed to load suggestions")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, items)
}

// FriendActivity lists one friend's activity
// @Summary Friend activity
// @Tags Discover
// @Produce json
// @Param friendId path int true "Friend user ID"
// @Success 200 {array} activity.Entry
// @Failure 403 {object} utils.ErrorResponse "Not friends"
// @Security BearerAuth
// @Router /discover/friend/{friendId} [get]
func (h *DiscoverHandler) FriendActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	friendID, appErr := pathID(r, "friendId")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	entries, err := h.activity.FriendActivity(r.Context(), userID, friendID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load friend activity")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, entries)
}

// WeeklyFeatured lists the featured entries running today
// @Summary Weekly featured
// @Tags Discover
// @Produce json
// @Success 200 {array} featured.WeeklyFeatured
// @Security BearerAuth
// @Router /discover/weekly-featured [get]
func (h *DiscoverHandler) WeeklyFeatured(w http.ResponseWriter, r *http.Request) {
	entries, err := h.featured.Active(r.Context())
	if err != nil {
		writeError(w, h.logger, err, "Failed to load featured subscriptions")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, entries)
}

// Impression logs that the caller saw a featured entry
// @Summary Record impression
// @Tags Discover
// @Produce json
// @Param id path int true "Featured entry ID"
// @Success 200 {object} dto.ImpressionResponse
// @Failure 404 {object} utils.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /discover/weekly-featured/{id}/impression [post]
func (h *DiscoverHandler) Impression(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	id, appErr := pathID(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	logID, err := h.featured.RecordImpression(r.Context(), id, userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to record impression")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ImpressionResponse{ImpressionID: logID})
}

// Click counts a click on a featured entry
// @Summary Record click
// @Tags Discover
// @Param id path int true "Featured entry ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /discover/weekly-featured/{id}/click [post]
func (h *DiscoverHandler) Click(w http.ResponseWriter, r *http.Request) {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.featured.RecordClick(r.Context(), id); err != nil {
		writeError(w, h.logger, err, "Failed to record click")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Click recorded", nil)
}
