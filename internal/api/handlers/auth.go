package handlers

import (
	"net/http"

	"github.com/paycal/backend/internal/api/dto"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/logger"
	"github.com/paycal/backend/internal/pkg/utils"
	"github.com/paycal/backend/internal/pkg/validator"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService user.Service
	logger      *logger.Logger
	validator   *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService user.Service, log *logger.Logger, val *validator.Validator) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      log,
		validator:   val,
	}
}

// Register handles user registration
// @Summary Register
// @Description Create an account and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse "Account created"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or email already in use"
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	u, token, err := h.userService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, h.logger, err, "Failed to register")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.AuthResponse{Token: token, User: u})
}

// Login handles user login
// @Summary User login
// @Description Authenticate user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.AuthResponse "Successfully authenticated"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 401 {object} utils.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if appErr := decode(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	u, token, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err, "Failed to log in")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.AuthResponse{Token: token, User: u})
}

// Me returns the authenticated user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} user.User
// @Failure 401 {object} utils.ErrorResponse "Missing token"
// @Failure 403 {object} utils.ErrorResponse "Invalid token"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "Failed to get user")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, u)
}
