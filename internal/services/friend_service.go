package services

import (
	"context"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/friend"
	"github.com/paycal/backend/internal/domain/profile"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/clock"
	"github.com/paycal/backend/internal/pkg/errors"
	"github.com/paycal/backend/internal/pkg/logger"
)

// FriendService implements friend.Service
type FriendService struct {
	repo     friend.Repository
	users    user.Repository
	settings profile.Repository
	tx       db.Transactor
	clock    clock.Clock
	logger   *logger.Logger
}

// NewFriendService creates a new friend service
func NewFriendService(
	repo friend.Repository,
	users user.Repository,
	settings profile.Repository,
	tx db.Transactor,
	clk clock.Clock,
	log *logger.Logger,
) friend.Service {
	return &FriendService{
		repo:     repo,
		users:    users,
		settings: settings,
		tx:       tx,
		clock:    clk,
		logger:   log,
	}
}

// SendRequest opens a pending request from one user to another
func (s *FriendService) SendRequest(ctx context.Context, from, to int64) (int64, error) {
	if from == to {
		return 0, errors.BadRequest("You cannot send a friend request to yourself")
	}

	var id int64
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, to); err != nil {
			return err
		}

		friends, err := s.repo.AreFriends(ctx, from, to)
		if err != nil {
			return err
		}
		if friends {
			return errors.Conflict("You are already friends")
		}

		pending, err := s.repo.RequestExists(ctx, from, to)
		if err != nil {
			return err
		}
		if pending {
			return errors.Conflict("A friend request already exists")
		}

		settings, err := s.settings.GetSettings(ctx, to)
		if err != nil {
			return err
		}
		if settings != nil && !settings.AllowFriendRequests {
			return errors.Forbidden("This user does not accept friend requests")
		}

		id, err = s.repo.CreateRequest(ctx, from, to, s.clock.Now())
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"from":       from,
		"to":         to,
		"request_id": id,
	}).Info("Friend request sent")
	return id, nil
}

// Accept marks a pending request accepted and links both users
func (s *FriendService) Accept(ctx context.Context, userID, requestID int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		req, err := s.repo.GetPending(ctx, requestID, userID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := s.repo.SetStatus(ctx, requestID, userID, friend.StatusAccepted, now); err != nil {
			return err
		}
		return s.repo.Link(ctx, req.FromUserID, req.ToUserID, now)
	})
}

// Reject marks a pending request rejected
func (s *FriendService) Reject(ctx context.Context, userID, requestID int64) error {
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetPending(ctx, requestID, userID); err != nil {
			return err
		}
		return s.repo.SetStatus(ctx, requestID, userID, friend.StatusRejected, s.clock.Now())
	})
}

// Incoming lists pending requests sent to the user
func (s *FriendService) Incoming(ctx context.Context, userID int64) ([]*friend.Request, error) {
	return s.repo.Incoming(ctx, userID)
}

// Outgoing lists pending requests the user has sent
func (s *FriendService) Outgoing(ctx context.Context, userID int64) ([]*friend.Request, error) {
	return s.repo.Outgoing(ctx, userID)
}

// List returns the user's friends
func (s *FriendService) List(ctx context.Context, userID int64) ([]*friend.Friend, error) {
	return s.repo.List(ctx, userID)
}

// Remove deletes the friendship in both directions
func (s *FriendService) Remove(ctx context.Context, userID, friendID int64) error {
	n, err := s.repo.Unlink(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("Friendship")
	}
	return nil
}
