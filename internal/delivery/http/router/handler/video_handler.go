package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"vidtube/internal/delivery/http/response"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VideoHandler holds dependencies for video-related handlers.
type VideoHandler struct {
	uc     usecase.VideoUsecase
	logger *slog.Logger
}

// NewVideoHandler is the constructor for VideoHandler, injected by Fx.
func NewVideoHandler(uc usecase.VideoUsecase, logger *slog.Logger) *VideoHandler {
	return &VideoHandler{
		uc:     uc,
		logger: logger,
	}
}

// Publish handles the multipart video upload request.
func (h *VideoHandler) Publish(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	videoFile, videoSrc, err := openFormFile(c, "videoFile")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "videoFile is required")
	}
	defer videoSrc.Close()

	input := &usecase.PublishVideoInput{
		OwnerID:     userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Video:       mediaFile(videoFile, videoSrc),
	}

	if duration, err := strconv.ParseFloat(c.FormValue("duration"), 64); err == nil {
		input.Duration = duration
	}

	if thumbFile, thumbSrc, err := openFormFile(c, "thumbnail"); err == nil {
		defer thumbSrc.Close()
		input.Thumbnail = mediaFile(thumbFile, thumbSrc)
	}

	video, err := h.uc.Publish(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, video, "Video published successfully")
}

// Get returns a single video. Authenticated views count towards the view
// total and the viewer's watch history.
func (h *VideoHandler) Get(c echo.Context) error {
	videoID, err := pathUUID(c, "videoID")
	if err != nil {
		return errors.WithStack(err)
	}

	video, err := h.uc.Get(c.Request().Context(), videoID, viewerID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, video, "Video retrieved successfully")
}

// List returns one page of a channel's videos.
func (h *VideoHandler) List(c echo.Context) error {
	ownerID, err := pathUUID(c, "userID")
	if err != nil {
		return errors.WithStack(err)
	}

	page, err := h.uc.List(c.Request().Context(), &usecase.ListVideosInput{
		OwnerID: ownerID,
		Page:    pageRequest(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "Videos retrieved successfully")
}

// Update modifies a video's metadata, optionally replacing the thumbnail.
func (h *VideoHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	videoID, err := pathUUID(c, "videoID")
	if err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdateVideoInput{
		VideoID:     videoID,
		OwnerID:     userID,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}

	if thumbFile, thumbSrc, err := openFormFile(c, "thumbnail"); err == nil {
		defer thumbSrc.Close()
		input.Thumbnail = mediaFile(thumbFile, thumbSrc)
	}

	video, err := h.uc.Update(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, video, "Video updated successfully")
}

// Delete removes a video.
func (h *VideoHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	videoID, err := pathUUID(c, "videoID")
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), videoID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Video deleted successfully")
}

// TogglePublish flips the video's publish flag.
func (h *VideoHandler) TogglePublish(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	videoID, err := pathUUID(c, "videoID")
	if err != nil {
		return errors.WithStack(err)
	}

	published, err := h.uc.TogglePublish(c.Request().Context(), videoID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"isPublished": published}, "Publish state toggled successfully")
}

// openFormFile opens one named file from the multipart form.
func openFormFile(c echo.Context, name string) (*multipart.FileHeader, multipart.File, error) {
	fileHeader, err := c.FormFile(name)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "missing form file %q", name)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open form file %q", name)
	}

	return fileHeader, src, nil
}

// mediaFile adapts a multipart upload to the usecase's media input.
func mediaFile(fileHeader *multipart.FileHeader, src multipart.File) *usecase.MediaFile {
	return &usecase.MediaFile{
		Content:     src,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}
}
