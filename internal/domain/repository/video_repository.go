package repository

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrVideoNotFound is returned when a video is not found.
var ErrVideoNotFound = errors.New("video not found")

// VideoRepository defines persistence operations for videos.
type VideoRepository interface {
	// Create persists a new video.
	Create(ctx context.Context, video *entity.Video) error

	// FindByID retrieves a video by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error)

	// FindByIDWithOwner retrieves a video joined with its owner's public fields.
	FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*entity.VideoWithOwner, error)

	// Exists reports whether a video with the given id exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListByOwner returns one page of the owner's videos.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page PageRequest) (*Page[*entity.Video], error)

	// Update persists changed metadata fields of an existing video.
	Update(ctx context.Context, video *entity.Video) error

	// Delete removes a video. Returns ErrVideoNotFound if nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementViews bumps the view counter by one in a single statement.
	IncrementViews(ctx context.Context, id uuid.UUID) error

	// TogglePublished flips the publish flag in a single conditional
	// statement and returns the new value.
	TogglePublished(ctx context.Context, id uuid.UUID) (bool, error)

	// FindLikedBy returns all videos the user has liked, most recently
	// liked first.
	FindLikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error)
}
