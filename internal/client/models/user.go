// Package models defines the client-side view of the marketplace domain:
// users, items, the enumerations they reference, and the request/response
// shapes exchanged with the backend.
package models

import "time"

// User is the session-cached copy of a backend user. The backend owns the
// record; the client never mutates it locally.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	College   string    `json:"college"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up request body.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	College  string `json:"college"`
}

// ProfileUpdate carries the editable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	College *string `json:"college,omitempty"`
	Avatar  *string `json:"avatar,omitempty"`
}

// PasswordChange is the change-password request body.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse is the payload of login/register/me responses. Token is only
// present on login and register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token,omitempty"`
}
