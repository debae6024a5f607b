package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/devfolio/portfolio-api/internal/auth/domain"
)

// Authenticator exchanges credentials for a session.
type Authenticator interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
}

// StaticAuthenticator checks credentials against a single configured account.
// It is a demonstration stub: plain-text password, no rate limiting, no user store.
type StaticAuthenticator struct {
	email    string
	password string
	tokens   *TokenIssuer
}

// NewStaticAuthenticator creates an authenticator for one account.
func NewStaticAuthenticator(email, password string, tokens *TokenIssuer) *StaticAuthenticator {
	return &StaticAuthenticator{email: email, password: password, tokens: tokens}
}

// Authenticate returns domain.ErrInvalidCredentials on any mismatch, without saying which field.
func (a *StaticAuthenticator) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(creds.Email), []byte(a.email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(a.password)) == 1
	if !emailOK || !passwordOK || a.email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user := domain.User{Email: a.email}
	token, expiresAt, err := a.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &domain.Session{Token: token, User: user, ExpiresAt: expiresAt}, nil
}
