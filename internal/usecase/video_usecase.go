package usecase

import (
	"context"
	"io"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"

	"github.com/google/uuid"
)

// MediaFile is one uploaded file stream plus its declared metadata.
type MediaFile struct {
	Content     io.Reader
	Filename    string
	ContentType string
}

// PublishVideoInput defines the data required to publish a new video.
type PublishVideoInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Duration    float64
	Video       *MediaFile
	Thumbnail   *MediaFile
}

// UpdateVideoInput defines the mutable metadata of a video.
type UpdateVideoInput struct {
	VideoID     uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Thumbnail   *MediaFile
}

// ListVideosInput defines the parameters for a paginated owner listing.
type ListVideosInput struct {
	OwnerID uuid.UUID
	Page    repository.PageRequest
}

// VideoUsecase defines the business operations over videos.
type VideoUsecase interface {
	// Publish uploads the media files and persists the video record.
	Publish(ctx context.Context, input *PublishVideoInput) (*entity.Video, error)

	// Get returns a video joined with its owner's public fields. When
	// viewerID is non-nil the view counter is bumped and the view is
	// appended to the viewer's watch history.
	Get(ctx context.Context, videoID uuid.UUID, viewerID *uuid.UUID) (*entity.VideoWithOwner, error)

	// List returns one page of the owner's videos.
	List(ctx context.Context, input *ListVideosInput) (*repository.Page[*entity.Video], error)

	// Update modifies the video's metadata. Only the owner may update.
	Update(ctx context.Context, input *UpdateVideoInput) (*entity.Video, error)

	// Delete removes the video and its stored media. Only the owner may delete.
	Delete(ctx context.Context, videoID, ownerID uuid.UUID) error

	// TogglePublish flips the publish flag and returns the new value. Only
	// the owner may toggle.
	TogglePublish(ctx context.Context, videoID, ownerID uuid.UUID) (bool, error)
}
