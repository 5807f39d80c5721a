package api

import (
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelogapp/cinelog-server/internal/catalog/tmdb"
	domainerrors "github.com/cinelogapp/cinelog-server/internal/errors"
	"github.com/cinelogapp/cinelog-server/internal/memory"
)

// newError invokes the huma error hook the way the framework does: whatever a
// handler returns is passed to huma.NewError with a default status, so the
// hook must recover the domain code from anywhere in the cause chain.
func newError(t *testing.T, status int, msg string, errs ...error) *APIError {
	t.Helper()
	RegisterErrorHandler()

	apiErr, ok := huma.NewError(status, msg, errs...).(*APIError)
	require.True(t, ok, "error handler must produce an *APIError")
	return apiErr
}

func TestErrorHandlerMapsRemoteCallTo502(t *testing.T) {
	// A failed catalog request arrives wrapped in handler context.
	cause := domainerrors.RemoteCall("tmdb: server error")
	err := fmt.Errorf("discover by mood %q: %w", "intense", cause)

	apiErr := newError(t, 500, "internal error", err)
	assert.Equal(t, 502, apiErr.GetStatus())
	assert.Equal(t, string(domainerrors.CodeRemoteCall), apiErr.Code)
}

// The tmdb sentinels are wrapped with the remote-call code at the client, so
// a dead upstream never degrades into a 500.
func TestErrorHandlerCoversCatalogSentinels(t *testing.T) {
	wrapped := domainerrors.Wrap(tmdb.ErrRateLimited,
		domainerrors.CodeRemoteCall, tmdb.ErrRateLimited.Error())

	apiErr := newError(t, 500, "internal error", wrapped)
	assert.Equal(t, 502, apiErr.GetStatus())
	assert.Equal(t, string(domainerrors.CodeRemoteCall), apiErr.Code)
	assert.ErrorIs(t, wrapped, tmdb.ErrRateLimited, "sentinel stays reachable for callers")
}

func TestErrorHandlerMapsCatalogNotFoundTo404(t *testing.T) {
	apiErr := newError(t, 500, "internal error",
		fmt.Errorf("details: %w", domainerrors.NotFound("tmdb: not found")))
	assert.Equal(t, 404, apiErr.GetStatus())
	assert.Equal(t, string(domainerrors.CodeNotFound), apiErr.Code)
}

func TestErrorHandlerMapsMemoryNotFound(t *testing.T) {
	apiErr := newError(t, 500, "internal error", memory.ErrNotFound)
	assert.Equal(t, 404, apiErr.GetStatus())
	assert.Equal(t, string(domainerrors.CodeNotFound), apiErr.Code)
}

func TestErrorHandlerStatusFallback(t *testing.T) {
	apiErr := newError(t, 422, "validation failed")
	assert.Equal(t, 422, apiErr.GetStatus())
	assert.Equal(t, string(domainerrors.CodeValidation), apiErr.Code)
}
