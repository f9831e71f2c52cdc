package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db db.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(d db.DB) user.Repository {
	return &UserRepository{db: d}
}

const userColumns = `id, email, password, name, is_premium, premium_expires_at, invite_token, created_at`

func scanUser(u *user.User) db.ScanFunc {
	return func(s db.Scanner) error {
		var expires, created db.NullTime
		var token sql.NullString
		if err := s.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.IsPremium, &expires, &token, &created); err != nil {
			return err
		}
		u.PremiumExpiresAt = expires.Ptr()
		u.InviteToken = stringPtr(token)
		u.CreatedAt = created.Time
		return nil
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (email, password, name, is_premium, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`

	res, err := db.Conn(ctx, r.db).Run(ctx, query, u.Email, u.PasswordHash, u.Name, u.IsPremium, u.CreatedAt)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	id, err := insertedID(res, "user")
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *UserRepository) getBy(ctx context.Context, column string, value interface{}) (*user.User, error) {
	var u user.User
	err := db.Conn(ctx, r.db).Get(ctx, `SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, scanUser(&u), value)
	if stderrors.Is(err, db.ErrNoRows) {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return &u, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, "email", email)
}

// GetByInviteToken resolves an invite token
func (r *UserRepository) GetByInviteToken(ctx context.Context, token string) (*user.User, error) {
	return r.getBy(ctx, "invite_token", token)
}

func (r *UserRepository) update(ctx context.Context, query, what string, args ...interface{}) error {
	res, err := db.Conn(ctx, r.db).Run(ctx, query, args...)
	if err != nil {
		return errors.DatabaseError("Failed to update "+what, err)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("User")
	}
	return nil
}

// SetInviteToken stores an invite token
func (r *UserRepository) SetInviteToken(ctx context.Context, id int64, token string) error {
	return r.update(ctx, `UPDATE users SET invite_token = ? WHERE id = ?`, "invite token", token, id)
}

// UpdateName renames a user
func (r *UserRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return r.update(ctx, `UPDATE users SET name = ? WHERE id = ?`, "user", name, id)
}

// SetPremium stores the premium flag and expiry
func (r *UserRepository) SetPremium(ctx context.Context, id int64, premium bool, expiresAt *time.Time) error {
	return r.update(ctx, `UPDATE users SET is_premium = ?, premium_expires_at = ? WHERE id = ?`,
		"premium status", premium, expiresAt, id)
}

// Search matches email or name case-insensitively
func (r *UserRepository) Search(ctx context.Context, query string, excludeID int64, limit int) ([]user.Summary, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	q := `
		SELECT id, email, name
		FROM users
		WHERE id <> ? AND (LOWER(email) LIKE ? OR LOWER(name) LIKE ?)
		ORDER BY name, email
		LIMIT ?
	`

	users := []user.Summary{}
	err := db.Conn(ctx, r.db).All(ctx, q, func(s db.Scanner) error {
		var u user.Summary
		if err := s.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return err
		}
		users = append(users, u)
		return nil
	}, excludeID, pattern, pattern, limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to search users", err)
	}
	return users, nil
}
