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

// commentSortKeys are the sort keys comment listings accept.
var commentSortKeys = map[string]struct{}{
	"createdAt": {},
}

// commentService implements the CommentUsecase interface.
type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	logger      *slog.Logger
}

// CommentServiceParams holds dependencies for commentService, injected by Fx.
type CommentServiceParams struct {
	fx.In

	CommentRepo repository.CommentRepository
	VideoRepo   repository.VideoRepository
	Logger      *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	return &commentService{
		commentRepo: params.CommentRepo,
		videoRepo:   params.VideoRepo,
		logger:      params.Logger,
	}
}

func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Add creates a comment on an existing video.
func (srv *commentService) Add(ctx context.Context, input *usecase.AddCommentInput) (*entity.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "comment content must not be empty")
	}

	exists, err := srv.videoRepo.Exists(ctx, input.VideoID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check video existence")
	}
	if !exists {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "video not found")
	}

	comment := &entity.Comment{
		VideoID: input.VideoID,
		OwnerID: input.OwnerID,
		Content: content,
	}

	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to create comment")
	}

	srv.log(ctx).Debug("Comment added", slog.Any("commentID", comment.ID), slog.Any("videoID", input.VideoID))

	return comment, nil
}

// List returns one page of a video's comments.
func (srv *commentService) List(ctx context.Context, input *usecase.ListCommentsInput) (*repository.Page[*entity.Comment], error) {
	if err := validateSortKey(input.Page.SortBy, commentSortKeys); err != nil {
		return nil, err
	}

	exists, err := srv.videoRepo.Exists(ctx, input.VideoID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check video existence")
	}
	if !exists {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "video not found")
	}

	page, err := srv.commentRepo.ListByVideo(ctx, input.VideoID, input.Page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return page, nil
}

// Update edits a comment's body. Only the author may edit.
func (srv *commentService) Update(ctx context.Context, input *usecase.UpdateCommentInput) (*entity.Comment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "comment content must not be empty")
	}

	comment, err := srv.loadOwnedComment(ctx, input.CommentID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := srv.commentRepo.Update(ctx, comment); err != nil {
		return nil, errors.Wrap(err, "failed to update comment")
	}

	return comment, nil
}

// Delete removes a comment. Only the author may delete.
func (srv *commentService) Delete(ctx context.Context, commentID, ownerID uuid.UUID) error {
	if _, err := srv.loadOwnedComment(ctx, commentID, ownerID); err != nil {
		return err
	}

	if err := srv.commentRepo.Delete(ctx, commentID); err != nil {
		return errors.Wrap(err, "failed to delete comment")
	}

	srv.log(ctx).Debug("Comment deleted", slog.Any("commentID", commentID))

	return nil
}

func (srv *commentService) loadOwnedComment(ctx context.Context, commentID, ownerID uuid.UUID) (*entity.Comment, error) {
	comment, err := srv.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "comment not found")
		}

		return nil, errors.Wrap(err, "failed to load comment")
	}

	if comment.OwnerID != ownerID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "caller does not own this comment")
	}

	return comment, nil
}
