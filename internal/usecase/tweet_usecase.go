package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateTweetInput defines the data required to post a tweet.
type CreateTweetInput struct {
	OwnerID uuid.UUID
	Content string
}

// UpdateTweetInput defines the data required to edit a tweet.
type UpdateTweetInput struct {
	TweetID uuid.UUID
	OwnerID uuid.UUID
	Content string
}

// TweetUsecase defines the business operations over channel tweets.
type TweetUsecase interface {
	// Create posts a new tweet on the caller's channel.
	Create(ctx context.Context, input *CreateTweetInput) (*entity.Tweet, error)

	// ListByOwner returns all tweets of a user, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Tweet, error)

	// Update edits a tweet's body. Only the author may edit.
	Update(ctx context.Context, input *UpdateTweetInput) (*entity.Tweet, error)

	// Delete removes a tweet. Only the author may delete.
	Delete(ctx context.Context, tweetID, ownerID uuid.UUID) error
}
