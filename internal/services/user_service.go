package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/paycal/backend/internal/auth"
	"github.com/paycal/backend/internal/config"
	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/friend"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/errors"
	"github.com/paycal/backend/internal/pkg/logger"
)

// UserService implements user.Service
type UserService struct {
	repo   user.Repository
	auth   config.AuthConfig
	clock  clock.Clock
	logger *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, authCfg config.AuthConfig, clk clock.Clock, log *logger.Logger) user.Service {
	return &UserService{
		repo:   repo,
		auth:   authCfg,
		clock:  clk,
		logger: log,
	}
}

// Register creates an account and signs a token for it
func (s *UserService) Register(ctx context.Context, email, password, name string) (*user.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, "", errors.BadRequest("Email, password and name are required")
	}

	hash, err := auth.HashPassword(password, s.auth.BCryptCost)
	if err != nil {
		return nil, "", errors.Internal("Failed to hash password", err)
	}

	u := &user.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", errors.Conflict("Email already in use")
		}
		s.logger.ErrorWithErr(err, "Failed to create user")
		return nil, "", err
	}

	token, err := s.token(u)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
	}).Info("User registered")

	return u, token, nil
}

// Login verifies credentials
func (s *UserService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil, "", errors.Unauthorized("Invalid email or password")
		}
		return nil, "", err
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return nil, "", errors.Unauthorized("Invalid email or password")
	}

	u.IsPremium = u.PremiumActive(s.clock.Now())
	token, err := s.token(u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *UserService) token(u *user.User) (string, error) {
	now := s.clock.Now()
	p := auth.Principal{ID: u.ID, Email: u.Email, IsPremium: u.PremiumActive(now)}

	token, err := auth.MintToken(p, s.auth.JWTSecret, s.auth.TokenExpiry, now)
	if err != nil {
		return "", errors.Internal("Failed to sign token", err)
	}
	return token, nil
}

// GetByID returns a user with is_premium derived from the expiry
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsPremium = u.PremiumActive(s.clock.Now())
	return u, nil
}

// Search finds other users by email or name
func (s *UserService) Search(ctx context.Context, callerID int64, query string) ([]user.Summary, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < friend.MinSearchLength {
		return nil, errors.BadRequest("Search query must be at least 2 characters")
	}
	return s.repo.Search(ctx, query, callerID, user.SearchLimit)
}
