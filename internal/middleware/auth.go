package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/tierlist-vote/internal/auth"
)

// sessionCookieName is the cookie the auth callback sets for browser
// clients. API clients send the same token as a Bearer header instead.
const sessionCookieName = "session"

// identityKey is the context key under which the authenticated Identity
// is stored. Handlers read it through CurrentIdentity.
const identityKey = "identity"

// SessionAuth returns an Echo middleware that validates the session JWT
// issued after the OIDC callback and injects the resulting Identity
// into the request context. The token is taken from the Authorization
// header when present, falling back to the session cookie so that
// browser requests work without extra client code. Requests without a
// valid token are rejected with 401.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if h := c.Request().Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			} else if ck, err := c.Cookie(sessionCookieName); err == nil {
				raw = ck.Value
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
			}

			// Parse with HS256 only; any other signing method is rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			ident := auth.Identity{
				ID:       stringClaim(claims, "sub"),
				Username: stringClaim(claims, "name"),
				Email:    stringClaim(claims, "email"),
			}
			if ident.ID == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session token"})
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// CurrentIdentity returns the Identity stored by SessionAuth. The
// second return is false on routes that did not pass through the
// middleware.
func CurrentIdentity(c echo.Context) (auth.Identity, bool) {
	ident, ok := c.Get(identityKey).(auth.Identity)
	return ident, ok
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
