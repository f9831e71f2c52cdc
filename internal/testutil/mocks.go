package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/errors"
)

// MockUserRepository is an in-memory implementation of user.Repository
type MockUserRepository struct {
	Users       map[int64]*user.User
	EmailIndex  map[string]*user.User
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:      make(map[int64]*user.User),
		EmailIndex: make(map[string]*user.User),
		NextID:     1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.EmailIndex[u.Email]; ok {
		return errors.DatabaseError("Failed to create user", db.ErrUniqueViolation)
	}
	u.ID = m.NextID
	m.NextID++
	stored := *u
	m.Users[u.ID] = &stored
	m.EmailIndex[u.Email] = &stored
	return nil
}

func (m *MockUserRepository) get(id int64) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return m.get(id)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	u, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("User")
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByInviteToken(ctx context.Context, token string) (*user.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	for _, u := range m.Users {
		if u.InviteToken != nil && *u.InviteToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errors.NotFound("User")
}

func (m *MockUserRepository) modify(id int64, fn func(u *user.User)) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	u, ok := m.Users[id]
	if !ok {
		return errors.NotFound("User")
	}
	fn(u)
	return nil
}

func (m *MockUserRepository) SetInviteToken(ctx context.Context, id int64, token string) error {
	return m.modify(id, func(u *user.User) { u.InviteToken = &token })
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id int64, name string) error {
	return m.modify(id, func(u *user.User) { u.Name = name })
}

func (m *MockUserRepository) SetPremium(ctx context.Context, id int64, premium bool, expiresAt *time.Time) error {
	return m.modify(id, func(u *user.User) {
		u.IsPremium = premium
		u.PremiumExpiresAt = expiresAt
	})
}

func (m *MockUserRepository) Search(ctx context.Context, query string, excludeID int64, limit int) ([]user.Summary, error) {
	q := strings.ToLower(query)
	out := []user.Summary{}
	for _, u := range m.Users {
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Email), q) || strings.Contains(strings.ToLower(u.Name), q) {
			out = append(out, u.Summary())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
