package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tierlist-vote/internal/auth"
	"github.com/iliyamo/tierlist-vote/internal/config"
	"github.com/iliyamo/tierlist-vote/internal/utils"
)

// stateCookieName holds the OAuth2 state between the login redirect and
// the provider callback.
const stateCookieName = "oauth_state"

// AuthHandler implements the OIDC login flow. Credentials, consent and
// MFA all happen at the identity provider; this handler only redirects
// out, exchanges the returned code and issues a session token for the
// resulting identity.
type AuthHandler struct {
	Cfg  config.Config
	OIDC *auth.OIDCClient
}

func NewAuthHandler(cfg config.Config, oidc *auth.OIDCClient) *AuthHandler {
	if oidc == nil {
		panic("nil OIDC client passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, OIDC: oidc}
}

// Login handles GET /auth/login: generate a state value, remember it in
// a short-lived cookie and send the browser to the provider.
func (h *AuthHandler) Login(c echo.Context) error {
	state, err := utils.NewStateToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not start login"})
	}
	c.SetCookie(&http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	target, err := h.OIDC.AuthCodeURL(c.Request().Context(), state)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "identity provider unavailable"})
	}
	return c.Redirect(http.StatusFound, target)
}

// Callback handles GET /auth/callback: verify the state, trade the code
// for an access token, resolve the identity and hand the browser a
// session cookie before bouncing it back to the frontend.
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing code or state"})
	}
	ck, err := c.Cookie(stateCookieName)
	if err != nil || ck.Value == "" || ck.Value != state {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "state mismatch"})
	}
	// The state cookie is single use.
	c.SetCookie(&http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	ctx := c.Request().Context()
	accessToken, err := h.OIDC.Exchange(ctx, code)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token exchange failed"})
	}
	ident, err := h.OIDC.Userinfo(ctx, accessToken)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not resolve user info"})
	}

	session, err := utils.NewSessionToken(h.Cfg.SessionSecret, ident, h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue session"})
	}
	c.SetCookie(&http.Cookie{
		Name:     "session",
		Value:    session.Token,
		Path:     "/",
		Expires:  session.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, h.Cfg.FrontendURL)
}

// Me handles GET /auth/me and echoes the authenticated identity back to
// the client.
func (h *AuthHandler) Me(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, ident)
}
