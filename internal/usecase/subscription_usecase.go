package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// SubscriptionUsecase defines the toggle and listing operations over channel
// subscriptions.
type SubscriptionUsecase interface {
	// Toggle flips the caller's subscription to the channel and returns the
	// new state plus the channel's subscriber count. Self-subscription is
	// rejected.
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*ToggleOutput, error)

	// ListSubscribers returns the public profiles of the channel's subscribers.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.PublicUser, error)

	// ListChannels returns the public profiles of the channels the user follows.
	ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.PublicUser, error)
}
