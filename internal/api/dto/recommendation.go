package dto

import "github.com/paycal/backend/internal/domain/recommendation"

// SaveProfileRequest represents an occupation profile upsert
type SaveProfileRequest struct {
	Occupation *string `json:"occupation" validate:"omitempty,max=50"`
	IsStudent  bool    `json:"is_student"`
	Interests  *string `json:"interests" validate:"omitempty,max=500"`
}

// ToProfile converts the request for userID
func (r SaveProfileRequest) ToProfile(userID int64) *recommendation.Profile {
	return &recommendation.Profile{
		UserID:     userID,
		Occupation: r.Occupation,
		IsStudent:  r.IsStudent,
		Interests:  r.Interests,
	}
}
