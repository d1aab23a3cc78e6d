package usecase

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"

	"github.com/google/uuid"
)

// AddCommentInput defines the data required to comment on a video.
type AddCommentInput struct {
	VideoID uuid.UUID
	OwnerID uuid.UUID
	Content string
}

// UpdateCommentInput defines the data required to edit a comment.
type UpdateCommentInput struct {
	CommentID uuid.UUID
	OwnerID   uuid.UUID
	Content   string
}

// ListCommentsInput defines the parameters for a paginated comment listing.
type ListCommentsInput struct {
	VideoID uuid.UUID
	Page    repository.PageRequest
}

// CommentUsecase defines the business operations over video comments.
type CommentUsecase interface {
	// Add creates a comment on an existing video.
	Add(ctx context.Context, input *AddCommentInput) (*entity.Comment, error)

	// List returns one page of a video's comments.
	List(ctx context.Context, input *ListCommentsInput) (*repository.Page[*entity.Comment], error)

	// Update edits a comment's body. Only the author may edit.
	Update(ctx context.Context, input *UpdateCommentInput) (*entity.Comment, error)

	// Delete removes a comment. Only the author may delete.
	Delete(ctx context.Context, commentID, ownerID uuid.UUID) error
}
