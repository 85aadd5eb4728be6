package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// providerMetadata is the subset of the OIDC discovery document the
// login flow needs.
type providerMetadata struct {
	AuthorizationEndpoint string `json:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"`
	UserinfoEndpoint      string `json:"userinfo_endpoint"`
}

// OIDCClient performs the authorization-code exchange against an
// external OpenID Connect provider. Protocol details beyond the
// redirect/exchange/userinfo triple are the provider's business; this
// client only needs the three endpoints from the discovery document,
// fetched lazily and cached for the process lifetime.
type OIDCClient struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RedirectURL  string

	http *http.Client

	mu   sync.Mutex
	meta *providerMetadata
}

// NewOIDCClient builds a client for the provider rooted at baseURL.
func NewOIDCClient(baseURL, clientID, clientSecret, redirectURL string) *OIDCClient {
	return &OIDCClient{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// metadata fetches and caches the provider's discovery document.
func (c *OIDCClient) metadata(ctx context.Context) (*providerMetadata, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.meta != nil {
		return c.meta, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/.well-known/openid-configuration", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oidc discovery: unexpected status %d", resp.StatusCode)
	}
	var meta providerMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("oidc discovery: decode: %w", err)
	}
	if meta.AuthorizationEndpoint == "" || meta.TokenEndpoint == "" || meta.UserinfoEndpoint == "" {
		return nil, fmt.Errorf("oidc discovery: incomplete document from %s", c.BaseURL)
	}
	c.meta = &meta
	return c.meta, nil
}

// AuthCodeURL returns the provider URL the browser is redirected to for
// login. The state value is round-tripped by the provider and must be
// checked on callback.
func (c *OIDCClient) AuthCodeURL(ctx context.Context, state string) (string, error) {
	meta, err := c.metadata(ctx)
	if err != nil {
		return "", err
	}
	q := url.Values{
		"response_type": {"code"},
		"client_id":     {c.ClientID},
		"redirect_uri":  {c.RedirectURL},
		"scope":         {"openid profile email"},
		"state":         {state},
	}
	return meta.AuthorizationEndpoint + "?" + q.Encode(), nil
}

// Exchange trades the authorization code for an access token.
func (c *OIDCClient) Exchange(ctx context.Context, code string) (string, error) {
	meta, err := c.metadata(ctx)
	if err != nil {
		return "", err
	}
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {c.RedirectURL},
		"client_id":     {c.ClientID},
		"client_secret": {c.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		meta.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token exchange: unexpected status %d", resp.StatusCode)
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("token exchange: decode: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token exchange: no access_token in response")
	}
	return tok.AccessToken, nil
}

// Userinfo resolves the access token into an Identity via the userinfo
// endpoint. Providers disagree on claim names, so the subject and
// username fall back through the aliases seen in the wild.
func (c *OIDCClient) Userinfo(ctx context.Context, accessToken string) (Identity, error) {
	meta, err := c.metadata(ctx)
	if err != nil {
		return Identity{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, meta.UserinfoEndpoint, nil)
	if err != nil {
		return Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := c.http.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("userinfo: unexpected status %d", resp.StatusCode)
	}
	var claims map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return Identity{}, fmt.Errorf("userinfo: decode: %w", err)
	}
	ident := Identity{
		ID:       firstString(claims, "sub", "uid", "id"),
		Username: firstString(claims, "name", "preferred_username", "username"),
		Email:    firstString(claims, "email"),
	}
	if ident.ID == "" {
		return Identity{}, fmt.Errorf("userinfo: no subject claim in response")
	}
	return ident, nil
}

// firstString returns the first non-empty string claim among keys.
func firstString(claims map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
