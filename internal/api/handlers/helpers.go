package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paycal/backend/internal/api/middleware"
	"github.com/paycal/backend/internal/pkg/errors"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
	"github.com/paycal/backend/internal/pkg/validator"
)

// writeError maps err onto the response. Unclassified errors are logged with
// their cause and reach the client only as fallback.
func writeError(w http.ResponseWriter, log *logger.Logger, err error, fallback string) {
	appErr := errors.FromError(err, fallback)
	if appErr.StatusCode >= http.StatusInternalServerError {
		log.ErrorWithErr(err, fallback)
		appErr = errors.New(appErr.Code, fallback, appErr.StatusCode)
	}
	utils.WriteError(w, appErr)
}

// decode reads a JSON body into v and validates it
func decode(r *http.Request, val *validator.Validator, v interface{}) *errors.AppError {
	return decodeBody(r, val, v, false)
}

// decodeOptional is decode for bodies that may be absent; v keeps its zero
// value when the body is empty, whatever Content-Length says.
func decodeOptional(r *http.Request, val *validator.Validator, v interface{}) *errors.AppError {
	return decodeBody(r, val, v, true)
}

func decodeBody(r *http.Request, val *validator.Validator, v interface{}, optional bool) *errors.AppError {
	if r.Body == nil || r.Body == http.NoBody {
		if optional {
			return nil
		}
		return errors.BadRequest("Invalid request body")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if optional && err == io.EOF {
			return nil
		}
		return errors.BadRequest("Invalid request body")
	}
	if validationErrs := val.Validate(v); len(validationErrs) > 0 {
		return errors.ValidationError("Validation failed", validationErrs)
	}
	return nil
}

// pathID parses a positive integer URL parameter
func pathID(r *http.Request, name string) (int64, *errors.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.BadRequest("Invalid " + name)
	}
	return id, nil
}

// callerID returns the authenticated user. Routes using it sit behind
// AuthMiddleware, so a missing principal is a wiring bug reported as 401.
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
	}
	return id, ok
}
