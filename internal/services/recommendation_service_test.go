package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paycal/backend/internal/domain/recommendation"
)

func strPtr(s string) *string { return &s }

func TestRecommendationService_SaveProfile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := e.register(t, "prof@example.com", "Prof")

	tests := []struct {
		name           string
		profile        recommendation.Profile
		wantOccupation *string
		wantInterests  *string
		wantStudent    bool
	}{
		{
			name:           "plain values",
			profile:        recommendation.Profile{Occupation: strPtr("designer"), Interests: strPtr("müzik")},
			wantOccupation: strPtr("designer"),
			wantInterests:  strPtr("müzik"),
		},
		{
			name:           "trimmed",
			profile:        recommendation.Profile{Occupation: strPtr("  developer "), Interests: strPtr(" oyun")},
			wantOccupation: strPtr("developer"),
			wantInterests:  strPtr("oyun"),
		},
		{
			name:        "blank becomes null",
			profile:     recommendation.Profile{Occupation: strPtr("   "), Interests: strPtr(""), IsStudent: true},
			wantStudent: true,
		},
		{
			name:    "overwrites previous",
			profile: recommendation.Profile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.profile
			p.UserID = u.ID
			require.NoError(t, e.recommendation.SaveProfile(ctx, &p))

			got, err := e.recommendation.GetProfile(ctx, u.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantOccupation, got.Occupation)
			assert.Equal(t, tt.wantInterests, got.Interests)
			assert.Equal(t, tt.wantStudent, got.IsStudent)
		})
	}
}

func TestRecommendationService_GetProfileMissing(t *testing.T) {
	e := newEnv(t)
	u := e.register(t, "none@example.com", "None")

	got, err := e.recommendation.GetProfile(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOccupationsAndTargetGroup(t *testing.T) {
	ids := []string{}
	for _, o := range recommendation.Occupations() {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"student", "developer", "designer", "marketer", "other"}, ids)

	assert.Nil(t, (&recommendation.Profile{}).TargetGroup())
	assert.Equal(t, "developer", *(&recommendation.Profile{Occupation: strPtr("developer")}).TargetGroup())
	assert.Equal(t, recommendation.StudentGroup, *(&recommendation.Profile{Occupation: strPtr("developer"), IsStudent: true}).TargetGroup())
}
