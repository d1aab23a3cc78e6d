package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// channelService implements the ChannelUsecase interface.
type channelService struct {
	userRepo         repository.UserRepository
	videoRepo        repository.VideoRepository
	subscriptionRepo repository.SubscriptionRepository
	logger           *slog.Logger
}

// ChannelServiceParams holds dependencies for channelService, injected by Fx.
type ChannelServiceParams struct {
	fx.In

	UserRepo         repository.UserRepository
	VideoRepo        repository.VideoRepository
	SubscriptionRepo repository.SubscriptionRepository
	Logger           *slog.Logger
}

// NewChannelService is the constructor for channelService.
func NewChannelService(params ChannelServiceParams) usecase.ChannelUsecase {
	return &channelService{
		userRepo:         params.UserRepo,
		videoRepo:        params.VideoRepo,
		subscriptionRepo: params.SubscriptionRepo,
		logger:           params.Logger,
	}
}

func (srv *channelService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile assembles the channel page: identity fields plus derived
// subscription counts and, for authenticated viewers, their own
// subscription state.
func (srv *channelService) GetProfile(ctx context.Context, username string, viewerID *uuid.UUID) (*entity.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "username must not be empty")
	}

	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "channel not found")
		}

		return nil, errors.Wrap(err, "failed to load channel user")
	}

	subscriberCount, err := srv.subscriptionRepo.CountByChannel(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count subscribers")
	}

	subscribedTo, err := srv.subscriptionRepo.CountBySubscriber(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count subscribed channels")
	}

	isSubscribed := false
	if viewerID != nil {
		isSubscribed, err = srv.subscriptionRepo.Exists(ctx, *viewerID, user.ID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check viewer subscription")
		}
	}

	srv.log(ctx).Debug("Channel profile assembled", slog.String("username", username))

	return &entity.ChannelProfile{
		User:            user.Public(),
		SubscriberCount: subscriberCount,
		SubscribedTo:    subscribedTo,
		IsSubscribed:    isSubscribed,
	}, nil
}

// WatchHistory returns the caller's watch history, most recent first.
func (srv *channelService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error) {
	entries, err := srv.userRepo.ListWatchHistory(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list watch history")
	}

	return entries, nil
}

// LikedVideos returns the videos the caller has liked, most recently liked first.
func (srv *channelService) LikedVideos(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error) {
	videos, err := srv.videoRepo.FindLikedBy(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list liked videos")
	}

	return videos, nil
}
