package entity

import "time"

// Profile is the app-side record for a provider auth user. Credentials live
// with the provider; this row carries only what the news app needs (role,
// display name, authoring channel).
type Profile struct {
	UserID      string
	Email       string
	DisplayName string
	AvatarURL   string
	Role        string
	ChannelID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Roles understood by the news app.
const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
	RoleReader = "reader"
)

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleAuthor || r == RoleReader
}
