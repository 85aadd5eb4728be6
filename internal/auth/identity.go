// Package auth covers the identity boundary: the OpenID Connect client
// used during login and the Identity value that represents the
// authenticated user for the rest of a request. Handlers receive the
// Identity explicitly through the request context; nothing reads
// session state from globals.
package auth

// Identity is the authenticated user as reported by the identity
// provider. ID holds the provider's stable subject and is what ends up
// in creator_id and vote user_id columns.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
