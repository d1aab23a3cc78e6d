package handler

import (
	"log/slog"
	"net/http"

	"vidtube/internal/delivery/http/response"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PlaylistHandler holds dependencies for playlist handlers.
type PlaylistHandler struct {
	uc     usecase.PlaylistUsecase
	logger *slog.Logger
}

// NewPlaylistHandler is the constructor for PlaylistHandler, injected by Fx.
func NewPlaylistHandler(uc usecase.PlaylistUsecase, logger *slog.Logger) *PlaylistHandler {
	return &PlaylistHandler{
		uc:     uc,
		logger: logger,
	}
}

type playlistRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description"`
}

// Create creates an empty playlist.
func (h *PlaylistHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req playlistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid playlist input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	playlist, err := h.uc.Create(c.Request().Context(), &usecase.CreatePlaylistInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, playlist, "Playlist created successfully")
}

// Get retrieves one playlist with its ordered video ids.
func (h *PlaylistHandler) Get(c echo.Context) error {
	playlistID, err := pathUUID(c, "playlistID")
	if err != nil {
		return errors.WithStack(err)
	}

	playlist, err := h.uc.Get(c.Request().Context(), playlistID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, playlist, "Playlist retrieved successfully")
}

// ListByOwner returns all playlists of a user.
func (h *PlaylistHandler) ListByOwner(c echo.Context) error {
	ownerID, err := pathUUID(c, "userID")
	if err != nil {
		return errors.WithStack(err)
	}

	playlists, err := h.uc.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, playlists, "Playlists retrieved successfully")
}

// AddVideo appends a video to a playlist.
func (h *PlaylistHandler) AddVideo(c echo.Context) error {
	input, err := h.membershipInput(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.AddVideo(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Video added to playlist successfully")
}

// RemoveVideo removes a video from a playlist.
func (h *PlaylistHandler) RemoveVideo(c echo.Context) error {
	input, err := h.membershipInput(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.RemoveVideo(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Video removed from playlist successfully")
}

// Update renames a playlist or changes its description.
func (h *PlaylistHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	playlistID, err := pathUUID(c, "playlistID")
	if err != nil {
		return errors.WithStack(err)
	}

	var req playlistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid playlist input")
	}

	playlist, err := h.uc.Update(c.Request().Context(), &usecase.UpdatePlaylistInput{
		PlaylistID:  playlistID,
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, playlist, "Playlist updated successfully")
}

// Delete removes a playlist.
func (h *PlaylistHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	playlistID, err := pathUUID(c, "playlistID")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), playlistID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Playlist deleted successfully")
}

func (h *PlaylistHandler) membershipInput(c echo.Context) (*usecase.PlaylistVideoInput, error) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, domainerrors.ErrUnauthorized
	}

	playlistID, err := pathUUID(c, "playlistID")
	if err != nil {
		return nil, err
	}

	videoID, err := pathUUID(c, "videoID")
	if err != nil {
		return nil, err
	}

	return &usecase.PlaylistVideoInput{
		PlaylistID: playlistID,
		VideoID:    videoID,
		OwnerID:    userID,
	}, nil
}
