package domain

import "time"

// Role is the authorization level of a user. Roles are assigned at creation
// and never mutated.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User models an authenticated actor in the system.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"isActive"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
	// RefreshToken is the single currently valid rotation token; empty means
	// the user has no open session.
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool { return u.DeletedAt != nil }

// CanAuthenticate reports whether the user may hold a session.
func (u *User) CanAuthenticate() bool { return u.IsActive && !u.IsDeleted() }

// UserSummary is the public identity of a user, used when resolving
// references such as audit performers or expense owners.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
