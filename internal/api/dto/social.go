package dto

import "github.com/paycal/backend/internal/domain/premium"

// SubscribePremiumRequest selects a premium plan
type SubscribePremiumRequest struct {
	Plan string `json:"plan" validate:"required,oneof=monthly yearly"`
}

// PlanValue returns the validated plan
func (r SubscribePremiumRequest) PlanValue() premium.Plan {
	p, _ := premium.ParsePlan(r.Plan)
	return p
}

// FriendRequestRequest addresses a friend request
type FriendRequestRequest struct {
	ToUserID int64 `json:"to_user_id" validate:"required,gt=0"`
}

// RequestCreatedResponse carries the id of a new friend request
type RequestCreatedResponse struct {
	RequestID int64 `json:"request_id"`
}

// SaveConsentRequest records the analytics consent answer
type SaveConsentRequest struct {
	AnalyticsConsent *bool `json:"analytics_consent" validate:"required"`
}

// ImpressionResponse carries the id of a logged impression
type ImpressionResponse struct {
	ImpressionID int64 `json:"impression_id"`
}
