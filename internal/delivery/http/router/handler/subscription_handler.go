package handler

import (
	"log/slog"
	"net/http"

	"vidtube/internal/delivery/http/response"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SubscriptionHandler holds dependencies for subscription handlers.
type SubscriptionHandler struct {
	uc     usecase.SubscriptionUsecase
	logger *slog.Logger
}

// NewSubscriptionHandler is the constructor for SubscriptionHandler, injected by Fx.
func NewSubscriptionHandler(uc usecase.SubscriptionUsecase, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		uc:     uc,
		logger: logger,
	}
}

// Toggle flips the caller's subscription to a channel.
func (h *SubscriptionHandler) Toggle(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	channelID, err := pathUUID(c, "channelID")
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Toggle(c.Request().Context(), userID, channelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Subscription toggled successfully")
}

// ListSubscribers returns the channel's subscribers.
func (h *SubscriptionHandler) ListSubscribers(c echo.Context) error {
	channelID, err := pathUUID(c, "channelID")
	if err != nil {
		return errors.WithStack(err)
	}

	subscribers, err := h.uc.ListSubscribers(c.Request().Context(), channelID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subscribers, "Subscribers retrieved successfully")
}

// ListChannels returns the channels the caller follows.
func (h *SubscriptionHandler) ListChannels(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	channels, err := h.uc.ListChannels(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, channels, "Subscribed channels retrieved successfully")
}
