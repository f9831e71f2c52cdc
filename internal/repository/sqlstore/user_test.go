package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/db"
	"github.com/paycal/backend/internal/domain/user"
	"github.com/paycal/backend/internal/pkg/errors"
	"github.com/paycal/backend/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	tests := []struct {
		name       string
		user       *user.User
		wantUnique bool
	}{
		{
			name: "create user successfully",
			user: &user.User{Email: "ayse@example.com", Name: "Ayşe", PasswordHash: "h"},
		},
		{
			name: "create another user",
			user: &user.User{Email: "mehmet@example.com", Name: "Mehmet", PasswordHash: "h"},
		},
		{
			name:       "duplicate email",
			user:       &user.User{Email: "ayse@example.com", Name: "Other", PasswordHash: "h"},
			wantUnique: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantUnique {
				require.Error(t, err)
				assert.True(t, db.IsUniqueViolation(err))
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, tt.user.ID)
		})
	}
}

func TestUserRepository_Lookups(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	u := seedUser(t, d, "ayse@example.com", "Ayşe")

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ayse@example.com", got.Email)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.False(t, got.IsPremium)
	assert.Nil(t, got.PremiumExpiresAt)
	assert.True(t, got.CreatedAt.Equal(now))

	got, err = repo.GetByEmail(ctx, "ayse@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByID(ctx, u.ID+1)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	_, err = repo.GetByInviteToken(ctx, "nope")
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	require.NoError(t, repo.SetInviteToken(ctx, u.ID, "tok123"))
	got, err = repo.GetByInviteToken(ctx, "tok123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.InviteToken)
	assert.Equal(t, "tok123", *got.InviteToken)
}

func TestUserRepository_SetPremium(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewUserRepository(d)
	ctx := context.Background()
	u := seedUser(t, d, "p@example.com", "Premium")

	expires := now.AddDate(0, 1, 0)
	require.NoError(t, repo.SetPremium(ctx, u.ID, true, &expires))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPremium)
	require.NotNil(t, got.PremiumExpiresAt)
	assert.True(t, got.PremiumExpiresAt.Equal(expires))

	require.NoError(t, repo.SetPremium(ctx, u.ID, false, nil))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPremium)
	assert.Nil(t, got.PremiumExpiresAt)

	err = repo.SetPremium(ctx, u.ID+10, false, nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))
}

func TestUserRepository_Search(t *testing.T) {
	d := testutil.NewTestDB(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	me := seedUser(t, d, "me@example.com", "Me Myself")
	seedUser(t, d, "zeynep@example.com", "Zeynep")
	seedUser(t, d, "ali@work.org", "Ali Veli")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"by email", "example", []string{"zeynep@example.com"}},
		{"by name case insensitive", "ALI", []string{"ali@work.org"}},
		{"excludes caller", "me@", []string{}},
		{"no match", "xyz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.query, me.ID, user.SearchLimit)
			require.NoError(t, err)

			emails := []string{}
			for _, s := range got {
				emails = append(emails, s.Email)
			}
			assert.Equal(t, tt.want, emails)
		})
	}
}
