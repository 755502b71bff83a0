// Package domain contains the core business entities for the Bimax Pro
// admin backend. These are pure Go structs with no external dependencies.
package domain

// User represents an administrator account stored in users.json.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`

	// Username is the unique username for login.
	Username string `json:"username"`

	// PasswordHash is the PBKDF2 digest in "salt:hash" hex format.
	// It is part of the users.json on-disk format but must never be
	// exposed in API responses; use PublicView for those.
	PasswordHash string `json:"passwordHash"`

	// Role is the user's role (currently always "admin").
	Role string `json:"role"`
}

// PublicUser is the view of a user that is safe to return from the API.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// PublicView returns the API-safe view of the user.
func (u *User) PublicView() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

// RoleAdmin is the role assigned to the default administrator account.
const RoleAdmin = "admin"

// DefaultAdminUsername is the username created on first boot when
// users.json does not exist yet.
const DefaultAdminUsername = "admin"
