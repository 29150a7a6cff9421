package domain

import "time"

// User models an operator account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the verified view of a user carried by a session.
type Identity struct {
	ID          string `json:"id" yaml:"id"`
	Email       string `json:"email" yaml:"email"`
	DisplayName string `json:"full_name" yaml:"display_name"`
}

// Identity returns the public identity of u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, DisplayName: u.FullName}
}
