package utils // package utils provides helper functions for token creation

import (
	"crypto/rand"  // secure random number generation
	"encoding/hex" // hex encoding functions
	"time"         // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

	"github.com/iliyamo/tierlist-vote/internal/auth"
)

// SessionToken represents a signed JWT session token along with its
// expiry. The Token field contains the JWT string. Exp stores the
// expiration timestamp as a time.Time. Session tokens are handed to the
// browser after the OIDC callback and presented on every API call.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for the given identity.
// The JWT carries the identity claims (sub, name, email) plus the
// standard expiration (exp) and issued at (iat) claims, so the
// middleware can rebuild the Identity without a database round trip.
func NewSessionToken(secret string, ident auth.Identity, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   ident.ID,
		"name":  ident.Username,
		"email": ident.Email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// NewStateToken returns a random hex string used as the OAuth2 state
// parameter. 24 bytes of entropy is plenty for CSRF protection.
func NewStateToken() (string, error) {
	return randomHex(24)
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
