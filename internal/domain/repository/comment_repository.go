package repository

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrCommentNotFound is returned when a comment is not found.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines persistence operations for video comments.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *entity.Comment) error

	// FindByID retrieves a comment by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)

	// Exists reports whether a comment with the given id exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListByVideo returns one page of a video's comments.
	ListByVideo(ctx context.Context, videoID uuid.UUID, page PageRequest) (*Page[*entity.Comment], error)

	// Update persists a changed comment body.
	Update(ctx context.Context, comment *entity.Comment) error

	// Delete removes a comment. Returns ErrCommentNotFound if nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
