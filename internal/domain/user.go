package domain

import (
	"errors"
	"time"
)

// User represents a registered customer.
type User struct {
	ID             string
	Username       string
	Email          string
	FullName       string
	HashedPassword string
	Active         bool
	CreatedAt      time.Time
}

// DisplayName returns the name shown on the dashboard.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
