package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "vidtube/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newErrorTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/videos", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func discardErrorMiddleware() *ErrorMiddleware {
	return NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleHTTPError_AppError(t *testing.T) {
	m := discardErrorMiddleware()
	c, rec := newErrorTestContext()

	m.HandleHTTPError(domainerrors.ErrRefreshTokenReused, c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "REFRESH_TOKEN_EXPIRED_OR_REUSED")
}

func TestHandleHTTPError_WrappedAppError(t *testing.T) {
	m := discardErrorMiddleware()
	c, rec := newErrorTestContext()

	m.HandleHTTPError(errors.Wrap(domainerrors.ErrNotFound, "video lookup"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	m := discardErrorMiddleware()
	c, rec := newErrorTestContext()

	m.HandleHTTPError(echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"), c)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "HTTP_ERROR")
}

func TestHandleHTTPError_UnhandledErrorDoesNotLeak(t *testing.T) {
	m := discardErrorMiddleware()
	c, rec := newErrorTestContext()

	// Wrapped driver errors carry SQL and connection text that must stay
	// out of the response body.
	dbErr := errors.Wrap(
		errors.New(`pq: connection refused (SELECT * FROM users WHERE refresh_token_hash = 'abc')`),
		"failed to rotate refresh token",
	)
	m.HandleHTTPError(dbErr, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, rec.Body.String(), "SELECT")
	assert.NotContains(t, rec.Body.String(), "refresh_token_hash")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestHandleHTTPError_CommittedResponseUntouched(t *testing.T) {
	m := discardErrorMiddleware()
	c, rec := newErrorTestContext()

	c.NoContent(http.StatusNoContent)
	m.HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
