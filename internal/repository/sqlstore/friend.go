package sqlstore

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/friend"
	"github.com/paycal/backend/internal/pkg/errors"
)

// FriendRepository implements friend.Repository
type FriendRepository struct {
	db db.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(d db.DB) friend.Repository {
	return &FriendRepository{db: d}
}

// AreFriends reports whether a links to b
func (r *FriendRepository) AreFriends(ctx context.Context, a, b int64) (bool, error) {
	var ok bool
	err := db.Conn(ctx, r.db).Get(ctx,
		`SELECT EXISTS (SELECT 1 FROM friends WHERE user_id = ? AND friend_id = ?)`,
		scanBool(&ok), a, b)
	if err != nil {
		return false, errors.DatabaseError("Failed to check friendship", err)
	}
	return ok, nil
}

// RequestExists reports whether a pending request links the users in either direction
func (r *FriendRepository) RequestExists(ctx context.Context, a, b int64) (bool, error) {
	var ok bool
	err := db.Conn(ctx, r.db).Get(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE status = ?
				AND ((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?))
		)`, scanBool(&ok), friend.StatusPending, a, b, b, a)
	if err != nil {
		return false, errors.DatabaseError("Failed to check friend requests", err)
	}
	return ok, nil
}

// CreateRequest inserts a pending request
func (r *FriendRepository) CreateRequest(ctx context.Context, from, to int64, at time.Time) (int64, error) {
	res, err := db.Conn(ctx, r.db).Run(ctx, `
		INSERT INTO friend_requests (from_user_id, to_user_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`, from, to, friend.StatusPending, at, at)
	if err != nil {
		return 0, errors.DatabaseError("Failed to create friend request", err)
	}
	return insertedID(res, "friend request")
}

// GetPending returns a pending request addressed to toUserID
func (r *FriendRepository) GetPending(ctx context.Context, id, toUserID int64) (*friend.Request, error) {
	var (
		req              friend.Request
		created, updated db.NullTime
	)
	err := db.Conn(ctx, r.db).Get(ctx, `
		SELECT id, from_user_id, to_user_id, status, created_at, updated_at
		FROM friend_requests
		WHERE id = ? AND to_user_id = ? AND status = ?`,
		func(s db.Scanner) error {
			return s.Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.Status, &created, &updated)
		}, id, toUserID, friend.StatusPending)
	if stderrors.Is(err, db.ErrNoRows) {
		return nil, errors.NotFound("Friend request")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get friend request", err)
	}
	req.CreatedAt = created.Time
	req.UpdatedAt = updated.Time
	return &req, nil
}

// SetStatus changes the status of a request addressed to toUserID
func (r *FriendRepository) SetStatus(ctx context.Context, id, toUserID int64, status string, at time.Time) error {
	res, err := db.Conn(ctx, r.db).Run(ctx,
		`UPDATE friend_requests SET status = ?, updated_at = ? WHERE id = ? AND to_user_id = ?`,
		status, at, id, toUserID)
	if err != nil {
		return errors.DatabaseError("Failed to update friend request", err)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Friend request")
	}
	return nil
}

// Link inserts both directions of a friendship
func (r *FriendRepository) Link(ctx context.Context, a, b int64, at time.Time) error {
	q := db.Conn(ctx, r.db)
	for _, pair := range [][2]int64{{a, b}, {b, a}} {
		_, err := q.Run(ctx, `
			INSERT INTO friends (user_id, friend_id, created_at) VALUES (?, ?, ?)
			ON CONFLICT (user_id, friend_id) DO NOTHING`, pair[0], pair[1], at)
		if err != nil {
			return errors.DatabaseError("Failed to add friend", err)
		}
	}
	return nil
}

// Unlink removes both directions of a friendship
func (r *FriendRepository) Unlink(ctx context.Context, a, b int64) (int64, error) {
	res, err := db.Conn(ctx, r.db).Run(ctx, `
		DELETE FROM friends
		WHERE (user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)`, a, b, b, a)
	if err != nil {
		return 0, errors.DatabaseError("Failed to remove friend", err)
	}
	return res.RowsAffected, nil
}

func (r *FriendRepository) listRequests(ctx context.Context, query string, userID int64) ([]*friend.Request, error) {
	reqs := []*friend.Request{}
	err := db.Conn(ctx, r.db).All(ctx, query, func(s db.Scanner) error {
		var (
			req              friend.Request
			created, updated db.NullTime
		)
		if err := s.Scan(&req.ID, &req.FromUserID, &req.ToUserID, &req.Status, &created, &updated, &req.Email, &req.Name); err != nil {
			return err
		}
		req.CreatedAt = created.Time
		req.UpdatedAt = updated.Time
		reqs = append(reqs, &req)
		return nil
	}, userID, friend.StatusPending)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list friend requests", err)
	}
	return reqs, nil
}

// Incoming lists pending requests to the user with the sender's details
func (r *FriendRepository) Incoming(ctx context.Context, userID int64) ([]*friend.Request, error) {
	return r.listRequests(ctx, `
		SELECT fr.id, fr.from_user_id, fr.to_user_id, fr.status, fr.created_at, fr.updated_at, u.email, u.name
		FROM friend_requests fr
		JOIN users u ON u.id = fr.from_user_id
		WHERE fr.to_user_id = ? AND fr.status = ?
		ORDER BY fr.created_at DESC, fr.id DESC`, userID)
}

// Outgoing lists pending requests from the user with the recipient's details
func (r *FriendRepository) Outgoing(ctx context.Context, userID int64) ([]*friend.Request, error) {
	return r.listRequests(ctx, `
		SELECT fr.id, fr.from_user_id, fr.to_user_id, fr.status, fr.created_at, fr.updated_at, u.email, u.name
		FROM friend_requests fr
		JOIN users u ON u.id = fr.to_user_id
		WHERE fr.from_user_id = ? AND fr.status = ?
		ORDER BY fr.created_at DESC, fr.id DESC`, userID)
}

// List lists the user's friends ordered by name
func (r *FriendRepository) List(ctx context.Context, userID int64) ([]*friend.Friend, error) {
	query := `
		SELECT u.id, u.email, u.name, f.created_at
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = ?
		ORDER BY u.name, u.email
	`

	friends := []*friend.Friend{}
	err := db.Conn(ctx, r.db).All(ctx, query, func(s db.Scanner) error {
		var (
			f     friend.Friend
			since db.NullTime
		)
		if err := s.Scan(&f.ID, &f.Email, &f.Name, &since); err != nil {
			return err
		}
		f.FriendSince = since.Time
		friends = append(friends, &f)
		return nil
	}, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list friends", err)
	}
	return friends, nil
}

// Count counts the user's friends
func (r *FriendRepository) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := db.Conn(ctx, r.db).Get(ctx, `SELECT COUNT(*) FROM friends WHERE user_id = ?`, scanCount(&n), userID); err != nil {
		return 0, errors.DatabaseError("Failed to count friends", err)
	}
	return n, nil
}
