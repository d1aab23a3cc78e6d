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

// tweetRepository implements the repository.TweetRepository interface.
type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository is the constructor for tweetRepository.
func NewTweetRepository(db *gorm.DB) repository.TweetRepository {
	return &tweetRepository{
		db: db,
	}
}

// Create persists a new tweet.
func (repo *tweetRepository) Create(ctx context.Context, tweet *entity.Tweet) error {
	tweetM := model.TweetModelFromEntity(tweet)

	if err := repo.db.WithContext(ctx).Create(tweetM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create tweet")
	}

	tweet.ID = tweetM.ID
	tweet.CreatedAt = tweetM.CreatedAt
	tweet.UpdatedAt = tweetM.UpdatedAt

	return nil
}

// FindByID retrieves a tweet by its unique ID.
func (repo *tweetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tweet, error) {
	var tweetM model.TweetModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tweetM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTweetNotFound
		}

		return nil, errors.Wrap(err, "failed to find tweet by ID")
	}

	return tweetM.ToEntity(), nil
}

// Exists reports whether a tweet with the given ID exists.
func (repo *tweetRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.TweetModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check tweet existence")
	}

	return count > 0, nil
}

// ListByOwner returns all tweets of a user, newest first.
func (repo *tweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Tweet, error) {
	var tweetModels []*model.TweetModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tweetModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tweets by owner")
	}

	tweets := make([]*entity.Tweet, 0, len(tweetModels))
	for _, tweetM := range tweetModels {
		tweets = append(tweets, tweetM.ToEntity())
	}

	return tweets, nil
}

// Update persists a changed tweet body.
func (repo *tweetRepository) Update(ctx context.Context, tweet *entity.Tweet) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TweetModel{}).
		Where("id = ?", tweet.ID).
		Update("content", tweet.Content)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update tweet")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTweetNotFound
	}

	return nil
}

// Delete removes a tweet and any likes pointing at it.
func (repo *tweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.TweetModel{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete tweet")
		}
		if result.RowsAffected == 0 {
			return repository.ErrTweetNotFound
		}

		if err := tx.Where("target_id = ? AND target_kind = ?", id, string(entity.LikeTargetTweet)).
			Delete(&model.LikeModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete tweet likes")
		}

		return nil
	})
}
