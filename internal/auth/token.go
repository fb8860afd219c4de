// Package auth implements the demo login flow and its session token.
//
// The token is issued and verified by this process with a locally configured
// HMAC secret. It is a stand-in for a server-issued credential: anything that
// must trust the caller's identity should verify a token from a real identity
// provider instead.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pcsoft.com/lumo/internal/session"
	"pcsoft.com/lumo/internal/store"
)

// TokenLifetime is the expiry applied to every issued token.
const TokenLifetime = time.Hour

// Claims is the token payload.
type Claims struct {
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  store.Role `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues, stores and checks the session token.
type Tokens struct {
	kv      store.KeyValueStore
	tracker *session.Tracker
	secret  []byte
	now     func() time.Time
}

func NewTokens(kv store.KeyValueStore, tracker *session.Tracker, secret string, now func() time.Time) *Tokens {
	if now == nil {
		now = time.Now
	}
	return &Tokens{kv: kv, tracker: tracker, secret: []byte(secret), now: now}
}

// Issue creates a token for user, stores it and records the login instant.
func (t *Tokens) Issue(user store.User) (string, error) {
	now := t.now()
	claims := Claims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	t.kv.Set(store.KeyAuthToken, token)
	t.tracker.RecordLogin()
	return token, nil
}

// Current returns the stored token, if any.
func (t *Tokens) Current() (string, bool) {
	token, ok := t.kv.Get(store.KeyAuthToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// IsValid reports whether a well-formed, correctly signed, unexpired token is stored.
func (t *Tokens) IsValid() bool {
	_, err := t.Claims()
	return err == nil
}

// Claims parses and verifies the stored token.
func (t *Tokens) Claims() (*Claims, error) {
	token, ok := t.Current()
	if !ok {
		return nil, fmt.Errorf("no token stored")
	}
	if strings.Count(token, ".") != 2 {
		return nil, fmt.Errorf("token must have three segments")
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// Revoke removes the token and then the login timestamp.
func (t *Tokens) Revoke() {
	t.kv.Remove(store.KeyAuthToken)
	t.tracker.ClearLogin()
}
