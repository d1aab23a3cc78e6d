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

// tweetService implements the TweetUsecase interface.
type tweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// TweetServiceParams holds dependencies for tweetService, injected by Fx.
type TweetServiceParams struct {
	fx.In

	TweetRepo repository.TweetRepository
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewTweetService is the constructor for tweetService.
func NewTweetService(params TweetServiceParams) usecase.TweetUsecase {
	return &tweetService{
		tweetRepo: params.TweetRepo,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

func (srv *tweetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create posts a new tweet on the caller's channel.
func (srv *tweetService) Create(ctx context.Context, input *usecase.CreateTweetInput) (*entity.Tweet, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "tweet content must not be empty")
	}

	tweet := &entity.Tweet{
		OwnerID: input.OwnerID,
		Content: content,
	}

	if err := srv.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, errors.Wrap(err, "failed to create tweet")
	}

	srv.log(ctx).Debug("Tweet created", slog.Any("tweetID", tweet.ID))

	return tweet, nil
}

// ListByOwner returns all tweets of a user, newest first.
func (srv *tweetService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Tweet, error) {
	exists, err := srv.userRepo.Exists(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check owner existence")
	}
	if !exists {
		return nil, errors.Wrap(domainerrors.ErrUserNotFound, "tweet owner does not exist")
	}

	tweets, err := srv.tweetRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tweets")
	}

	return tweets, nil
}

// Update edits a tweet's body. Only the author may edit.
func (srv *tweetService) Update(ctx context.Context, input *usecase.UpdateTweetInput) (*entity.Tweet, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "tweet content must not be empty")
	}

	tweet, err := srv.loadOwnedTweet(ctx, input.TweetID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := srv.tweetRepo.Update(ctx, tweet); err != nil {
		return nil, errors.Wrap(err, "failed to update tweet")
	}

	return tweet, nil
}

// Delete removes a tweet. Only the author may delete.
func (srv *tweetService) Delete(ctx context.Context, tweetID, ownerID uuid.UUID) error {
	if _, err := srv.loadOwnedTweet(ctx, tweetID, ownerID); err != nil {
		return err
	}

	if err := srv.tweetRepo.Delete(ctx, tweetID); err != nil {
		return errors.Wrap(err, "failed to delete tweet")
	}

	srv.log(ctx).Debug("Tweet deleted", slog.Any("tweetID", tweetID))

	return nil
}

func (srv *tweetService) loadOwnedTweet(ctx context.Context, tweetID, ownerID uuid.UUID) (*entity.Tweet, error) {
	tweet, err := srv.tweetRepo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, repository.ErrTweetNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "tweet not found")
		}

		return nil, errors.Wrap(err, "failed to load tweet")
	}

	if tweet.OwnerID != ownerID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "caller does not own this tweet")
	}

	return tweet, nil
}
