package invite

import "github.com/paycal/backend/internal/domain/user"

// LinkPrefix is the deep link scheme the mobile app opens
const LinkPrefix = "paycal://invite/"

// Invite is a user's shareable invite
type Invite struct {
	Token string `json:"invite_token"`
	Link  string `json:"invite_link"`
}

// NewInvite builds the invite for a token
func NewInvite(token string) *Invite {
	return &Invite{Token: token, Link: LinkPrefix + token}
}

// Inviter is the owner of an invite token as seen by the invitee
type Inviter struct {
	User              user.Summary `json:"user"`
	IsFriend          bool         `json:"is_friend"`
	HasPendingRequest bool         `json:"has_pending_request"`
}
