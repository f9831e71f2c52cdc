package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/paycal/backend/internal/domain/friend"
	"github.com/paycal/backend/internal/domain/invite"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/errors"
)

// InviteService implements invite.Service
type InviteService struct {
	users   user.Repository
	friends friend.Repository
	social  friend.Service
}

// NewInviteService creates a new invite service. Accepting an invite goes
// through social so the usual friend request checks apply.
func NewInviteService(users user.Repository, friends friend.Repository, social friend.Service) invite.Service {
	return &InviteService{users: users, friends: friends, social: social}
}

func newInviteToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Get returns the caller's invite, creating the token on first use
func (s *InviteService) Get(ctx context.Context, userID int64) (*invite.Invite, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.InviteToken != nil && *u.InviteToken != "" {
		return invite.NewInvite(*u.InviteToken), nil
	}

	token := newInviteToken()
	if err := s.users.SetInviteToken(ctx, userID, token); err != nil {
		return nil, err
	}
	return invite.NewInvite(token), nil
}

func (s *InviteService) inviter(ctx context.Context, userID int64, token string) (*user.User, error) {
	u, err := s.users.GetByInviteToken(ctx, token)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil, errors.NotFound("Invite")
		}
		return nil, err
	}
	if u.ID == userID {
		return nil, errors.BadRequest("You cannot use your own invite")
	}
	return u, nil
}

// Resolve describes who sent an invite and how the caller relates to them
func (s *InviteService) Resolve(ctx context.Context, userID int64, token string) (*invite.Inviter, error) {
	u, err := s.inviter(ctx, userID, token)
	if err != nil {
		return nil, err
	}

	isFriend, err := s.friends.AreFriends(ctx, userID, u.ID)
	if err != nil {
		return nil, err
	}
	pending, err := s.friends.RequestExists(ctx, userID, u.ID)
	if err != nil {
		return nil, err
	}

	return &invite.Inviter{
		User:              u.Summary(),
		IsFriend:          isFriend,
		HasPendingRequest: pending,
	}, nil
}

// Accept sends a friend request to the inviter
func (s *InviteService) Accept(ctx context.Context, userID int64, token string) (int64, error) {
	u, err := s.inviter(ctx, userID, token)
	if err != nil {
		return 0, err
	}
	return s.social.SendRequest(ctx, userID, u.ID)
}
