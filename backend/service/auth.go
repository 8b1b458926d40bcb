package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"files-manager/backend/common"
	"files-manager/backend/model"
)

// ErrUnauthorized is the uniform rejection for every authentication failure.
// The cause (bad header, unknown email, wrong password, dead token) is never
// exposed, so accounts cannot be enumerated.
var ErrUnauthorized = errors.New("unauthorized")

// AuthGate validates credentials and tokens. It reads users and manages
// sessions; it never writes the catalog.
type AuthGate struct {
	sessions *SessionStore
}

func NewAuthGate(sessions *SessionStore) *AuthGate {
	return &AuthGate{sessions: sessions}
}

// Login checks a Basic-style Authorization header value and mints a session
// token on success.
func (g *AuthGate) Login(ctx context.Context, authHeader string) (string, error) {
	_, encoded, ok := strings.Cut(authHeader, " ")
	if !ok {
		return "", ErrUnauthorized
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrUnauthorized
	}
	email, password, ok := strings.Cut(string(decoded), ":")
	if !ok || email == "" || password == "" {
		return "", ErrUnauthorized
	}
	user, err := model.GetUserByEmailAndPassword(email, common.HashPassword(password))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUnauthorized
	}
	return g.sessions.Create(ctx, user.ID)
}

// Logout revokes the session behind token. An already dead token is
// unauthorized, not a silent success.
func (g *AuthGate) Logout(ctx context.Context, token string) error {
	if _, err := g.UserForToken(ctx, token); err != nil {
		return err
	}
	return g.sessions.Revoke(ctx, token)
}

// UserForToken resolves a token to a live user id.
func (g *AuthGate) UserForToken(ctx context.Context, token string) (uint64, error) {
	if token == "" {
		return 0, ErrUnauthorized
	}
	userID, ok, err := g.sessions.Resolve(ctx, token)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrUnauthorized
	}
	return userID, nil
}
