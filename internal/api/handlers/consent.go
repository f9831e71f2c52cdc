package handlers

import (
	"net/http"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/consent"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
	"github.com/paycal/backend/internal/pkg/validator"
)

// ConsentHandler records analytics consent and serves the privacy policy
type ConsentHandler struct {
	service   consent.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewConsentHandler(service consent.Service, log *logger.Logger, val *validator.Validator) *ConsentHandler {
	return &ConsentHandler{service: service, logger: log, validator: val}
}

// Status returns the caller's consent record
// @Summary Consent status
// @Tags Consent
// @Produce json
// @Success 200 {object} consent.Status
// @Security BearerAuth
// @Router /consent/status [get]
func (h *ConsentHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	status, err := h.service.Status(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load consent")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, status)
}

// Save stores the caller's consent answer
// @Summary Save consent
// @Tags Consent
// @Accept json
// @Param request body dto.SaveConsentRequest true "Consent"
// @Success 200 {object} utils.SuccessResponse
// @Security BearerAuth
// @Router /consent/save [post]
func (h *ConsentHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.SaveConsentRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Save(r.Context(), userID, *req.AnalyticsConsent); err != nil {
		writeError(w, h.logger, err, "Failed to save consent")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Consent saved", nil)
}

// PrivacyPolicy returns the static policy text
// @Summary Privacy policy
// @Tags Consent
// @Produce json
// @Success 200 {object} consent.Policy
// @Router /consent/privacy-policy [get]
func (h *ConsentHandler) PrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, consent.PrivacyPolicy())
}
