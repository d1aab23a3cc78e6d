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

// likeRepository implements the repository.LikeRepository interface.
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository is the constructor for likeRepository.
func NewLikeRepository(db *gorm.DB) repository.LikeRepository {
	return &likeRepository{
		db: db,
	}
}

// Create inserts the relation row. The composite unique index on
// (user_id, target_id, target_kind) is what serializes concurrent toggles:
// losers of the race get ErrDuplicateLike.
func (repo *likeRepository) Create(ctx context.Context, like *entity.Like) error {
	likeM := model.LikeModelFromEntity(like)

	if err := repo.db.WithContext(ctx).Create(likeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateLike
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create like")
	}

	like.ID = likeM.ID
	like.CreatedAt = likeM.CreatedAt

	return nil
}

// Delete removes the relation row.
func (repo *likeRepository) Delete(ctx context.Context, userID, targetID uuid.UUID, kind entity.LikeTarget) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND target_id = ? AND target_kind = ?", userID, targetID, string(kind)).
		Delete(&model.LikeModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete like")
	}

	if result.RowsAffected == 0 {
		return repository.ErrLikeNotFound
	}

	return nil
}

// Exists reports whether the relation row exists.
func (repo *likeRepository) Exists(ctx context.Context, userID, targetID uuid.UUID, kind entity.LikeTarget) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("user_id = ? AND target_id = ? AND target_kind = ?", userID, targetID, string(kind)).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check like existence")
	}

	return count > 0, nil
}

// CountByTarget returns how many users have the relation on.
func (repo *likeRepository) CountByTarget(ctx context.Context, targetID uuid.UUID, kind entity.LikeTarget) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.LikeModel{}).
		Where("target_id = ? AND target_kind = ?", targetID, string(kind)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count likes")
	}

	return count, nil
}
