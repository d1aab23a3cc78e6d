package handler

import (
	"log/slog"
	"net/http"

	"vidtube/internal/delivery/http/response"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChannelHandler holds dependencies for channel read-path handlers.
type ChannelHandler struct {
	uc     usecase.ChannelUsecase
	logger *slog.Logger
}

// NewChannelHandler is the constructor for ChannelHandler, injected by Fx.
func NewChannelHandler(uc usecase.ChannelUsecase, logger *slog.Logger) *ChannelHandler {
	return &ChannelHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfile returns a channel page by username. Authenticated viewers also
// get their own subscription state.
func (h *ChannelHandler) GetProfile(c echo.Context) error {
	profile, err := h.uc.GetProfile(c.Request().Context(), c.Param("username"), viewerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Channel profile retrieved successfully")
}

// WatchHistory returns the caller's watch history, most recent first.
func (h *ChannelHandler) WatchHistory(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	entries, err := h.uc.WatchHistory(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entries, "Watch history retrieved successfully")
}

// LikedVideos returns the videos the caller has liked.
func (h *ChannelHandler) LikedVideos(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	videos, err := h.uc.LikedVideos(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, videos, "Liked videos retrieved successfully")
}
