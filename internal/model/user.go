package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (int64, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// User represents a stored user with authentication material.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// PublicUser is the projection handed to callers after authentication.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// UserProfile is the full projection of a user without the password hash.
type UserProfile struct {
	PublicUser
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Public returns the public projection of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

// Profile returns the full projection of u.
func (u User) Profile() UserProfile {
	return UserProfile{
		PublicUser: u.Public(),
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}

// NewUser carries registration input with the plaintext password.
type NewUser struct {
	Username string
	Email    string
	Password string
	FullName string
}

// ProfileUpdate is a partial update. Nil fields are left untouched.
type ProfileUpdate struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// Normalize drops fields that are set to an empty string.
func (u ProfileUpdate) Normalize() ProfileUpdate {
	if u.FullName != nil && *u.FullName == "" {
		u.FullName = nil
	}
	if u.Email != nil && *u.Email == "" {
		u.Email = nil
	}
	return u
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.FullName == nil && u.Email == nil
}
