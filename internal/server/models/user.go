// Package models contains the server-side domain records and their wire
// representations.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	College      string    `json:"college"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicProfile is the seller view embedded in items.
func (u *User) PublicProfile() Seller {
	return Seller{ID: u.ID, Name: u.Name, College: u.College, Avatar: u.Avatar}
}
