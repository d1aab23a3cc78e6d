package handler

import (
	"log/slog"
	"net/http"

	"vidtube/internal/delivery/http/response"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TweetHandler holds dependencies for tweet handlers.
type TweetHandler struct {
	uc     usecase.TweetUsecase
	logger *slog.Logger
}

// NewTweetHandler is the constructor for TweetHandler, injected by Fx.
func NewTweetHandler(uc usecase.TweetUsecase, logger *slog.Logger) *TweetHandler {
	return &TweetHandler{
		uc:     uc,
		logger: logger,
	}
}

type tweetRequest struct {
	Content string `json:"content" validate:"required"`
}

// Create posts a tweet on the caller's channel.
func (h *TweetHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req tweetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tweet input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	tweet, err := h.uc.Create(c.Request().Context(), &usecase.CreateTweetInput{
		OwnerID: userID,
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, tweet, "Tweet created successfully")
}

// ListByOwner returns all tweets of a user.
func (h *TweetHandler) ListByOwner(c echo.Context) error {
	ownerID, err := pathUUID(c, "userID")
	if err != nil {
		return errors.WithStack(err)
	}

	tweets, err := h.uc.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tweets, "Tweets retrieved successfully")
}

// Update edits a tweet's body.
func (h *TweetHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	tweetID, err := pathUUID(c, "tweetID")
	if err != nil {
		return errors.WithStack(err)
	}

	var req tweetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tweet input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	tweet, err := h.uc.Update(c.Request().Context(), &usecase.UpdateTweetInput{
		TweetID: tweetID,
		OwnerID: userID,
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tweet, "Tweet updated successfully")
}

// Delete removes a tweet.
func (h *TweetHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	tweetID, err := pathUUID(c, "tweetID")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), tweetID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Tweet deleted successfully")
}
