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

// targetChecker reports whether a toggle target of one kind exists.
type targetChecker func(ctx context.Context, id uuid.UUID) (bool, error)

// likeService implements the LikeUsecase interface.
type likeService struct {
	likeRepo repository.LikeRepository
	checkers map[entity.LikeTarget]targetChecker
	logger   *slog.Logger
}

// LikeServiceParams holds dependencies for likeService, injected by Fx.
type LikeServiceParams struct {
	fx.In

	LikeRepo    repository.LikeRepository
	VideoRepo   repository.VideoRepository
	CommentRepo repository.CommentRepository
	TweetRepo   repository.TweetRepository
	Logger      *slog.Logger
}

// NewLikeService is the constructor for likeService.
func NewLikeService(params LikeServiceParams) usecase.LikeUsecase {
	return &likeService{
		likeRepo: params.LikeRepo,
		checkers: map[entity.LikeTarget]targetChecker{
			entity.LikeTargetVideo:   params.VideoRepo.Exists,
			entity.LikeTargetComment: params.CommentRepo.Exists,
			entity.LikeTargetTweet:   params.TweetRepo.Exists,
		},
		logger: params.Logger,
	}
}

func (srv *likeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Toggle flips the relation for the caller. The store's uniqueness
// constraint, not a prior read, decides races: a duplicate-key result on
// create means another request already switched the relation on, and the
// toggle converges on that state instead of failing.
func (srv *likeService) Toggle(ctx context.Context, input *usecase.ToggleLikeInput) (*usecase.ToggleOutput, error) {
	if !input.TargetKind.Valid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown like target kind")
	}

	// 1. The target must exist before any state is written.
	if err := srv.checkTarget(ctx, input.TargetID, input.TargetKind); err != nil {
		return nil, err
	}

	// 2. Read the current state to pick a direction.
	liked, err := srv.likeRepo.Exists(ctx, input.UserID, input.TargetID, input.TargetKind)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check like state")
	}

	active, err := srv.flip(ctx, input, liked)
	if err != nil {
		return nil, err
	}

	count, err := srv.likeRepo.CountByTarget(ctx, input.TargetID, input.TargetKind)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count likes after toggle")
	}

	srv.log(ctx).Debug("Like toggled",
		slog.Any("userID", input.UserID),
		slog.Any("targetID", input.TargetID),
		slog.String("kind", string(input.TargetKind)),
		slog.Bool("active", active),
	)

	return &usecase.ToggleOutput{Active: active, Count: count}, nil
}

// flip applies the state transition chosen from the pre-read.
func (srv *likeService) flip(ctx context.Context, input *usecase.ToggleLikeInput, liked bool) (bool, error) {
	if liked {
		err := srv.likeRepo.Delete(ctx, input.UserID, input.TargetID, input.TargetKind)
		if err != nil && !errors.Is(err, repository.ErrLikeNotFound) {
			return false, errors.Wrap(err, "failed to remove like")
		}
		// ErrLikeNotFound: a concurrent toggle already removed it. Both
		// requests agree on the off state.
		return false, nil
	}

	like := &entity.Like{
		UserID:     input.UserID,
		TargetID:   input.TargetID,
		TargetKind: input.TargetKind,
	}
	if err := srv.likeRepo.Create(ctx, like); err != nil {
		if errors.Is(err, repository.ErrDuplicateLike) {
			// A concurrent toggle won the insert race; the relation is on.
			return true, nil
		}

		return false, errors.Wrap(err, "failed to create like")
	}

	return true, nil
}

// Count returns how many users currently like the target.
func (srv *likeService) Count(ctx context.Context, targetID uuid.UUID, kind entity.LikeTarget) (int64, error) {
	if !kind.Valid() {
		return 0, errors.Wrap(domainerrors.ErrValidationFailed, "unknown like target kind")
	}

	count, err := srv.likeRepo.CountByTarget(ctx, targetID, kind)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count likes")
	}

	return count, nil
}

// IsLiked reports whether the user currently likes the target.
func (srv *likeService) IsLiked(ctx context.Context, userID, targetID uuid.UUID, kind entity.LikeTarget) (bool, error) {
	if !kind.Valid() {
		return false, errors.Wrap(domainerrors.ErrValidationFailed, "unknown like target kind")
	}

	liked, err := srv.likeRepo.Exists(ctx, userID, targetID, kind)
	if err != nil {
		return false, errors.Wrap(err, "failed to check like state")
	}

	return liked, nil
}

func (srv *likeService) checkTarget(ctx context.Context, targetID uuid.UUID, kind entity.LikeTarget) error {
	checker, ok := srv.checkers[kind]
	if !ok {
		return errors.Wrap(domainerrors.ErrValidationFailed, "unknown like target kind")
	}

	exists, err := checker(ctx, targetID)
	if err != nil {
		return errors.Wrap(err, "failed to check toggle target")
	}
	if !exists {
		return errors.Wrap(domainerrors.ErrTargetNotFound, "toggle target does not exist")
	}

	return nil
}
