package tmdb

import (
	"errors"
	"fmt"

	domainerrors "github.com/cinelogapp/cinelog-server/internal/errors"
)

// Sentinel errors for TMDB API operations.
var (
	// ErrMissingAPIKey is returned before any network call when no credential
	// is configured.
	ErrMissingAPIKey = domainerrors.Configuration("tmdb: TMDB_API_KEY is not set")

	ErrNotFound     = errors.New("tmdb: not found")
	ErrUnauthorized = errors.New("tmdb: invalid API key")
	ErrRateLimited  = errors.New("tmdb: rate limited by server")
	ErrServer       = errors.New("tmdb: server error")
)

// remoteErr tags a sentinel with the remote-call error code so the HTTP
// layer surfaces 502 instead of a generic internal error. The sentinel stays
// reachable through errors.Is for callers that branch on the cause.
func remoteErr(sentinel error) error {
	return domainerrors.Wrap(sentinel, domainerrors.CodeRemoteCall, sentinel.Error())
}

// notFoundErr tags the not-found sentinel with the domain code; a 404 from
// the catalog is the caller's problem, not the upstream's.
func notFoundErr() error {
	return domainerrors.Wrap(ErrNotFound, domainerrors.CodeNotFound, ErrNotFound.Error())
}

// Error wraps an underlying error with operation context so callers can
// diagnose a failed call without retrying it.
type Error struct {
	Op   string // Operation: "search", "discover", "trending", ...
	Path string // Request path, if applicable
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("tmdb %s [%s]: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Err: err}
}
