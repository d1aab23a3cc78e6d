// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// currentUserID returns the authenticated user id set by the auth middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return userID, ok
}

// viewerID returns the authenticated user id as a nilable pointer for read
// paths that also serve anonymous requests.
func viewerID(c echo.Context) *uuid.UUID {
	if userID, ok := currentUserID(c); ok {
		return &userID
	}

	return nil
}

// pathUUID parses a uuid path parameter.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " path parameter")
	}

	return id, nil
}

// pageRequest reads pagination query parameters. Out-of-range values are
// normalized further down, so parse failures simply fall back to defaults.
func pageRequest(c echo.Context) repository.PageRequest {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	return repository.PageRequest{
		Page:      page,
		PageSize:  pageSize,
		SortBy:    c.QueryParam("sortBy"),
		Direction: repository.SortDirection(c.QueryParam("sortDir")),
	}
}
