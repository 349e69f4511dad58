package model

import "time"

// UserRole represents the role of a user in the system.
type UserRole string

const (
	// RoleUser is a standard creator account.
	RoleUser UserRole = "user"
	// RoleAdmin has access to the admin surface (campaign and
	// applicant management).
	RoleAdmin UserRole = "admin"
	// RoleAnonymous is an unauthenticated visitor with read-only
	// access to public campaigns.
	RoleAnonymous UserRole = "anonymous"
)

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	// ProviderLocal authenticates with email and password.
	ProviderLocal AuthProvider = "local"
	// ProviderGoogle authenticates with a Google ID token.
	ProviderGoogle AuthProvider = "google"
)

// User is a Matchably account as returned by the auth verify endpoint.
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	InstagramID string       `json:"instagramId,omitempty"`
	TikTokID    string       `json:"tiktokId,omitempty"`
	Provider    AuthProvider `json:"provider,omitempty"`
	Role        UserRole     `json:"role,omitempty"`
	Verified    bool         `json:"verified,omitempty"`
	Blocked     bool         `json:"blocked,omitempty"`
	CreatedAt   time.Time    `json:"created_at,omitempty"`
}

// IsAdmin returns true if the user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AnonymousUser is the built-in identity for unauthenticated visitors.
var AnonymousUser = &User{
	ID:       "user_anonymous",
	Name:     "anonymous",
	Provider: ProviderLocal,
	Role:     RoleAnonymous,
}
