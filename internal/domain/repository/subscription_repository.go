package repository

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for subscription persistence.
var (
	// ErrSubscriptionNotFound is returned when no subscription exists for the pair.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrDuplicateSubscription is returned when a create hits the uniqueness
	// constraint on (subscriber, channel).
	ErrDuplicateSubscription = errors.New("subscription already exists")
)

// SubscriptionRepository defines persistence operations for channel
// subscriptions. Structurally a toggle relation, but with its own query
// surface: subscriber lists and followed-channel lists.
type SubscriptionRepository interface {
	// Create inserts the subscription row. A uniqueness violation surfaces
	// as ErrDuplicateSubscription.
	Create(ctx context.Context, sub *entity.Subscription) error

	// Delete removes the subscription row. Returns ErrSubscriptionNotFound
	// if the pair was not subscribed.
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error

	// Exists reports whether subscriberID follows channelID.
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)

	// CountByChannel returns the channel's subscriber count.
	CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error)

	// CountBySubscriber returns how many channels the user follows.
	CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error)

	// ListSubscribers returns the public profiles of a channel's subscribers.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.PublicUser, error)

	// ListChannels returns the public profiles of the channels a user follows.
	ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.PublicUser, error)
}
