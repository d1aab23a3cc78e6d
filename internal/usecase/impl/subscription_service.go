package impl

import (
	"context"
	"log/slog"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	logger           *slog.Logger
}

// SubscriptionServiceParams holds dependencies for subscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	SubscriptionRepo repository.SubscriptionRepository
	UserRepo         repository.UserRepository
	Logger           *slog.Logger
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		subscriptionRepo: params.SubscriptionRepo,
		userRepo:         params.UserRepo,
		logger:           params.Logger,
	}
}

func (srv *subscriptionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Toggle flips the caller's subscription to the channel. Races follow the
// same convergence rule as likes: the unique constraint on
// (subscriber, channel) decides, and a duplicate-key create means the
// relation is already on.
func (srv *subscriptionService) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (*usecase.ToggleOutput, error) {
	if subscriberID == channelID {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "cannot subscribe to own channel")
	}

	// 1. The channel must be an existing user.
	exists, err := srv.userRepo.Exists(ctx, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check channel existence")
	}
	if !exists {
		return nil, errors.Wrap(domainerrors.ErrTargetNotFound, "channel does not exist")
	}

	// 2. Read the current state to pick a direction.
	subscribed, err := srv.subscriptionRepo.Exists(ctx, subscriberID, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check subscription state")
	}

	active, err := srv.flip(ctx, subscriberID, channelID, subscribed)
	if err != nil {
		return nil, err
	}

	count, err := srv.subscriptionRepo.CountByChannel(ctx, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count subscribers after toggle")
	}

	srv.log(ctx).Debug("Subscription toggled",
		slog.Any("subscriberID", subscriberID),
		slog.Any("channelID", channelID),
		slog.Bool("active", active),
	)

	return &usecase.ToggleOutput{Active: active, Count: count}, nil
}

func (srv *subscriptionService) flip(ctx context.Context, subscriberID, channelID uuid.UUID, subscribed bool) (bool, error) {
	if subscribed {
		err := srv.subscriptionRepo.Delete(ctx, subscriberID, channelID)
		if err != nil && !errors.Is(err, repository.ErrSubscriptionNotFound) {
			return false, errors.Wrap(err, "failed to remove subscription")
		}

		return false, nil
	}

	sub := &entity.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}
	if err := srv.subscriptionRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubscription) {
			return true, nil
		}

		return false, errors.Wrap(err, "failed to create subscription")
	}

	return true, nil
}

// ListSubscribers returns the public profiles of the channel's subscribers.
func (srv *subscriptionService) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.PublicUser, error) {
	exists, err := srv.userRepo.Exists(ctx, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check channel existence")
	}
	if !exists {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "channel does not exist")
	}

	subscribers, err := srv.subscriptionRepo.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscribers")
	}

	return subscribers, nil
}

// ListChannels returns the public profiles of the channels the user follows.
func (srv *subscriptionService) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.PublicUser, error) {
	channels, err := srv.subscriptionRepo.ListChannels(ctx, subscriberID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscribed channels")
	}

	return channels, nil
}
