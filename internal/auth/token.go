package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 7 * 24 * time.Hour

const bearerPrefix = "Bearer "

// Claims is the payload carried by a bearer token.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies HS256 bearer tokens with a shared secret.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

// NewTokens returns a Tokens using secret as the HMAC key.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of t that reads the current time from now.
// Tests use it to issue tokens in the past.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	return &Tokens{secret: t.secret, now: now}
}

// Issue returns a signed token for the user that expires after TokenTTL.
func (t *Tokens) Issue(userID uuid.UUID, email string) (string, error) {
	if userID == uuid.Nil {
		return "", errors.New("auth.Tokens.Issue: empty user id")
	}
	now := t.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Tokens.Issue: %w", err)
	}
	return signed, nil
}

// Verify parses an Authorization header value ("Bearer <token>") and returns
// its claims. ok is false for a missing header, a malformed or expired token,
// an unexpected signing method, or a bad signature. Verify never panics.
func (t *Tokens) Verify(header string) (claims Claims, ok bool) {
	raw, found := strings.CutPrefix(strings.TrimSpace(header), bearerPrefix)
	if !found {
		return Claims{}, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Claims{}, false
	}

	var parsed Claims
	_, err := jwt.ParseWithClaims(raw, &parsed,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || parsed.UserID == uuid.Nil {
		return Claims{}, false
	}
	return parsed, true
}
