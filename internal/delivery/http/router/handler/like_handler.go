package handler

import (
	"log/slog"
	"net/http"

	"vidtube/internal/delivery/http/response"
	"vidtube/internal/domain/entity"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LikeHandler holds dependencies for like toggle handlers.
type LikeHandler struct {
	uc     usecase.LikeUsecase
	logger *slog.Logger
}

// NewLikeHandler is the constructor for LikeHandler, injected by Fx.
func NewLikeHandler(uc usecase.LikeUsecase, logger *slog.Logger) *LikeHandler {
	return &LikeHandler{
		uc:     uc,
		logger: logger,
	}
}

// Toggle flips the caller's like on the target and returns the new state.
func (h *LikeHandler) Toggle(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	kind := entity.LikeTarget(c.Param("kind"))
	targetID, err := pathUUID(c, "targetID")
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Toggle(c.Request().Context(), &usecase.ToggleLikeInput{
		UserID:     userID,
		TargetID:   targetID,
		TargetKind: kind,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Like toggled successfully")
}

// State returns the target's like count and, for authenticated callers,
// whether they currently like it.
func (h *LikeHandler) State(c echo.Context) error {
	kind := entity.LikeTarget(c.Param("kind"))
	targetID, err := pathUUID(c, "targetID")
	if err != nil {
		return errors.WithStack(err)
	}

	count, err := h.uc.Count(c.Request().Context(), targetID, kind)
	if err != nil {
		return errors.WithStack(err)
	}

	liked := false
	if viewer := viewerID(c); viewer != nil {
		liked, err = h.uc.IsLiked(c.Request().Context(), *viewer, targetID, kind)
		if err != nil {
			return errors.WithStack(err)
		}
	}

	return response.Success(c, http.StatusOK, &usecase.ToggleOutput{
		Active: liked,
		Count:  count,
	}, "Like state retrieved successfully")
}
