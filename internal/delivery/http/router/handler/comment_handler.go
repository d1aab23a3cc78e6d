package handler

import (
	"log/slog"
	"net/http"

	"vidtube/internal/delivery/http/response"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler holds dependencies for comment handlers.
type CommentHandler struct {
	uc     usecase.CommentUsecase
	logger *slog.Logger
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		uc:     uc,
		logger: logger,
	}
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Add creates a comment on a video.
func (h *CommentHandler) Add(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	videoID, err := pathUUID(c, "videoID")
	if err != nil {
		return errors.WithStack(err)
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	comment, err := h.uc.Add(c.Request().Context(), &usecase.AddCommentInput{
		VideoID: videoID,
		OwnerID: userID,
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, comment, "Comment added successfully")
}

// List returns one page of a video's comments.
func (h *CommentHandler) List(c echo.Context) error {
	videoID, err := pathUUID(c, "videoID")
	if err != nil {
		return errors.WithStack(err)
	}

	page, err := h.uc.List(c.Request().Context(), &usecase.ListCommentsInput{
		VideoID: videoID,
		Page:    pageRequest(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "Comments retrieved successfully")
}

// Update edits a comment's body.
func (h *CommentHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	commentID, err := pathUUID(c, "commentID")
	if err != nil {
		return errors.WithStack(err)
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	comment, err := h.uc.Update(c.Request().Context(), &usecase.UpdateCommentInput{
		CommentID: commentID,
		OwnerID:   userID,
		Content:   req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comment, "Comment updated successfully")
}

// Delete removes a comment.
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	commentID, err := pathUUID(c, "commentID")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), commentID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment deleted successfully")
}
