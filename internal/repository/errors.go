// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrTierMismatch signals that a referenced tier does not
// belong to the tierlist under mutation.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrTierMismatch is returned when a supplied tier id exists but belongs
// to a different tierlist than the entity being mutated. Handlers should
// translate this into an HTTP 400 response.
var ErrTierMismatch = errors.New("tier does not belong to this tierlist")
