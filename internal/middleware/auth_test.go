package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/tierlist-vote/internal/auth"
	"github.com/iliyamo/tierlist-vote/internal/utils"
)

const testSecret = "unit-test-secret"

var testIdentity = auth.Identity{ID: "user-1", Username: "alice", Email: "alice@example.com"}

// runSessionAuth sends a request through SessionAuth into a handler
// that echoes back the identity it sees.
func runSessionAuth(t *testing.T, secret string, decorate func(*http.Request)) (*httptest.ResponseRecorder, auth.Identity) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if decorate != nil {
		decorate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen auth.Identity
	h := SessionAuth(secret)(func(c echo.Context) error {
		ident, ok := CurrentIdentity(c)
		require.True(t, ok)
		seen = ident
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, seen
}

func TestSessionAuthBearerHeader(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, testIdentity, 60)
	require.NoError(t, err)

	rec, seen := runSessionAuth(t, testSecret, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testIdentity, seen)
}

func TestSessionAuthCookieFallback(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, testIdentity, 60)
	require.NoError(t, err)

	rec, seen := runSessionAuth(t, testSecret, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "session", Value: tok.Token})
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testIdentity, seen)
}

func TestSessionAuthMissingToken(t *testing.T) {
	rec, _ := runSessionAuth(t, testSecret, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewSessionToken("a-different-secret", testIdentity, 60)
	require.NoError(t, err)

	rec, _ := runSessionAuth(t, testSecret, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, testIdentity, -1)
	require.NoError(t, err)

	rec, _ := runSessionAuth(t, testSecret, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthGarbageToken(t *testing.T) {
	rec, _ := runSessionAuth(t, testSecret, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not.a.jwt")
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCurrentIdentityWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := CurrentIdentity(c)
	assert.False(t, ok)
}
