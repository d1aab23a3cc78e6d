package impl

import (
	"context"
	"log/slog"
	"path"
	"strings"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// videoSortKeys are the sort keys video listings accept.
var videoSortKeys = map[string]struct{}{
	"createdAt": {},
	"title":     {},
	"views":     {},
	"duration":  {},
}

// validateSortKey rejects sort keys outside the listing's whitelist. An
// empty key means the listing's default order.
func validateSortKey(sortBy string, allowed map[string]struct{}) error {
	if sortBy == "" {
		return nil
	}
	if _, ok := allowed[sortBy]; !ok {
		return errors.Wrap(domainerrors.ErrValidationFailed, "unknown sort key: "+sortBy)
	}

	return nil
}

// videoService implements the VideoUsecase interface.
type videoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	storage   service.MediaStorage
	logger    *slog.Logger
}

// VideoServiceParams holds dependencies for videoService, injected by Fx.
type VideoServiceParams struct {
	fx.In

	VideoRepo repository.VideoRepository
	UserRepo  repository.UserRepository
	Storage   service.MediaStorage
	Logger    *slog.Logger
}

// NewVideoService is the constructor for videoService.
func NewVideoService(params VideoServiceParams) usecase.VideoUsecase {
	return &videoService{
		videoRepo: params.VideoRepo,
		userRepo:  params.UserRepo,
		storage:   params.Storage,
		logger:    params.Logger,
	}
}

func (srv *videoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Publish uploads the media files and persists the video record.
func (srv *videoService) Publish(ctx context.Context, input *usecase.PublishVideoInput) (*entity.Video, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "title must not be empty")
	}
	if input.Video == nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "video file is required")
	}

	srv.log(ctx).Info("Publishing video", slog.Any("ownerID", input.OwnerID), slog.String("title", title))

	// 1. Upload the video file; the storage key is namespaced per owner.
	videoURL, err := srv.uploadMedia(ctx, input.OwnerID, "videos", input.Video)
	if err != nil {
		return nil, err
	}

	// 2. Upload the optional thumbnail.
	var thumbnailURL string
	if input.Thumbnail != nil {
		thumbnailURL, err = srv.uploadMedia(ctx, input.OwnerID, "thumbnails", input.Thumbnail)
		if err != nil {
			return nil, err
		}
	}

	// 3. Persist the record.
	video := &entity.Video{
		OwnerID:      input.OwnerID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     input.Duration,
		IsPublished:  true,
	}

	if err := srv.videoRepo.Create(ctx, video); err != nil {
		return nil, errors.Wrap(err, "failed to create video record")
	}

	srv.log(ctx).Debug("Video published", slog.Any("videoID", video.ID))

	return video, nil
}

// Get returns a video joined with its owner. Authenticated views bump the
// view counter and append to the viewer's watch history.
func (srv *videoService) Get(ctx context.Context, videoID uuid.UUID, viewerID *uuid.UUID) (*entity.VideoWithOwner, error) {
	video, err := srv.videoRepo.FindByIDWithOwner(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "video not found")
		}

		return nil, errors.Wrap(err, "failed to load video")
	}

	if viewerID != nil {
		if err := srv.videoRepo.IncrementViews(ctx, videoID); err != nil {
			srv.log(ctx).Warn("Failed to increment views", slog.Any("videoID", videoID), slog.Any("error", err))
		} else {
			video.Views++
		}

		if err := srv.userRepo.AppendWatchHistory(ctx, *viewerID, videoID); err != nil {
			srv.log(ctx).Warn("Failed to append watch history", slog.Any("videoID", videoID), slog.Any("error", err))
		}
	}

	return video, nil
}

// List returns one page of the owner's videos.
func (srv *videoService) List(ctx context.Context, input *usecase.ListVideosInput) (*repository.Page[*entity.Video], error) {
	if err := validateSortKey(input.Page.SortBy, videoSortKeys); err != nil {
		return nil, err
	}

	exists, err := srv.userRepo.Exists(ctx, input.OwnerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check owner existence")
	}
	if !exists {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "video owner does not exist")
	}

	page, err := srv.videoRepo.ListByOwner(ctx, input.OwnerID, input.Page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list videos")
	}

	return page, nil
}

// Update modifies the video's metadata. Only the owner may update.
func (srv *videoService) Update(ctx context.Context, input *usecase.UpdateVideoInput) (*entity.Video, error) {
	video, err := srv.loadOwnedVideo(ctx, input.VideoID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		video.Title = title
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		video.Description = description
	}
	if input.Thumbnail != nil {
		thumbnailURL, err := srv.uploadMedia(ctx, input.OwnerID, "thumbnails", input.Thumbnail)
		if err != nil {
			return nil, err
		}
		video.ThumbnailURL = thumbnailURL
	}

	if err := srv.videoRepo.Update(ctx, video); err != nil {
		return nil, errors.Wrap(err, "failed to update video")
	}

	srv.log(ctx).Debug("Video updated", slog.Any("videoID", video.ID))

	return video, nil
}

// Delete removes the video record. Only the owner may delete.
func (srv *videoService) Delete(ctx context.Context, videoID, ownerID uuid.UUID) error {
	if _, err := srv.loadOwnedVideo(ctx, videoID, ownerID); err != nil {
		return err
	}

	if err := srv.videoRepo.Delete(ctx, videoID); err != nil {
		return errors.Wrap(err, "failed to delete video")
	}

	srv.log(ctx).Info("Video deleted", slog.Any("videoID", videoID), slog.Any("ownerID", ownerID))

	return nil
}

// TogglePublish flips the publish flag. Only the owner may toggle.
func (srv *videoService) TogglePublish(ctx context.Context, videoID, ownerID uuid.UUID) (bool, error) {
	if _, err := srv.loadOwnedVideo(ctx, videoID, ownerID); err != nil {
		return false, err
	}

	published, err := srv.videoRepo.TogglePublished(ctx, videoID)
	if err != nil {
		return false, errors.Wrap(err, "failed to toggle publish state")
	}

	return published, nil
}

// loadOwnedVideo loads a video and enforces ownership.
func (srv *videoService) loadOwnedVideo(ctx context.Context, videoID, ownerID uuid.UUID) (*entity.Video, error) {
	video, err := srv.videoRepo.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "video not found")
		}

		return nil, errors.Wrap(err, "failed to load video")
	}

	if video.OwnerID != ownerID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "caller does not own this video")
	}

	return video, nil
}

// uploadMedia streams one file to storage under a collision-free key.
func (srv *videoService) uploadMedia(ctx context.Context, ownerID uuid.UUID, prefix string, file *usecase.MediaFile) (string, error) {
	key := path.Join(prefix, ownerID.String(), uuid.New().String()+path.Ext(file.Filename))

	url, err := srv.storage.Upload(ctx, key, file.ContentType, file.Content)
	if err != nil {
		srv.log(ctx).Error("Media upload failed", slog.String("key", key), slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrMediaUploadFailed, "media upload failed")
	}

	return url, nil
}
