package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Credentials is what a login request supplies.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public view of an authenticated account.
type User struct {
	Email string `json:"email"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"-"`
}

// Claims are the verified contents of a session token.
type Claims struct {
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
