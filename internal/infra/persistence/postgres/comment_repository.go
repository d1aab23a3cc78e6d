package postgres

import (
	"context"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// commentRepository implements the repository.CommentRepository interface.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{
		db: db,
	}
}

// Create persists a new comment.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := model.CommentModelFromEntity(comment)

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrVideoNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt
	comment.UpdatedAt = commentM.UpdatedAt

	return nil
}

// FindByID retrieves a comment by its unique ID.
func (repo *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var commentM model.CommentModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&commentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment by ID")
	}

	return commentM.ToEntity(), nil
}

// Exists reports whether a comment with the given ID exists.
func (repo *commentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check comment existence")
	}

	return count > 0, nil
}

// ListByVideo returns one page of a video's comments, newest first by default.
func (repo *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[*entity.Comment], error) {
	page = page.Normalize()

	query := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("video_id = ?", videoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count comments")
	}

	direction := "DESC"
	if page.Direction == repository.SortAsc {
		direction = "ASC"
	}

	var commentModels []*model.CommentModel
	if err := query.
		Order("created_at " + direction).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&commentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	comments := make([]*entity.Comment, 0, len(commentModels))
	for _, commentM := range commentModels {
		comments = append(comments, commentM.ToEntity())
	}

	return &repository.Page[*entity.Comment]{
		Items:    comments,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

// Update persists a changed comment body.
func (repo *commentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CommentModel{}).
		Where("id = ?", comment.ID).
		Update("content", comment.Content)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update comment")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// Delete removes a comment and any likes pointing at it.
func (repo *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.CommentModel{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete comment")
		}
		if result.RowsAffected == 0 {
			return repository.ErrCommentNotFound
		}

		if err := tx.Where("target_id = ? AND target_kind = ?", id, string(entity.LikeTargetComment)).
			Delete(&model.LikeModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete comment likes")
		}

		return nil
	})
}
