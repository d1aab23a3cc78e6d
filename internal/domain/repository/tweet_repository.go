package repository

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrTweetNotFound is returned when a tweet is not found.
var ErrTweetNotFound = errors.New("tweet not found")

// TweetRepository defines persistence operations for channel tweets.
type TweetRepository interface {
	// Create persists a new tweet.
	Create(ctx context.Context, tweet *entity.Tweet) error

	// FindByID retrieves a tweet by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tweet, error)

	// Exists reports whether a tweet with the given id exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// ListByOwner returns all tweets of a user, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Tweet, error)

	// Update persists a changed tweet body.
	Update(ctx context.Context, tweet *entity.Tweet) error

	// Delete removes a tweet. Returns ErrTweetNotFound if nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
