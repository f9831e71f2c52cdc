package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int             `json:"-"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Details    json.RawMessage `json:"details,omitempty"`
}

// LimitDetails accompanies a LIMIT_EXCEEDED error
type LimitDetails struct {
	UpgradeRequired bool `json:"upgrade_required"`
	Limit           int  `json:"limit"`
	Current         int  `json:"current"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// IsNotFound returns true if the error is a 404 not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is a 401 unauthorized error
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsForbidden returns true for a rejected token or a denied action
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsLimitExceeded reports a free-tier quota rejection and its details
func (e *APIError) IsLimitExceeded() (LimitDetails, bool) {
	var d LimitDetails
	if e.Code != "LIMIT_EXCEEDED" {
		return d, false
	}
	_ = json.Unmarshal(e.Details, &d)
	return d, true
}

// IsServerError returns true if the error is a 5xx server error
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
