// Package repository implements persistence over database/sql with
// hand-written queries. Failure scenarios that handlers must tell apart
// are expressed as sentinel errors; the domain-specific ones live next
// to their repo, this file holds the ones shared across repositories.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
