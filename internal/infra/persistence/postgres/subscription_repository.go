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

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create inserts the subscription row. The composite unique index on
// (subscriber_id, channel_id) serializes concurrent toggles the same way
// the likes table does.
func (repo *subscriptionRepository) Create(ctx context.Context, sub *entity.Subscription) error {
	subM := model.SubscriptionModelFromEntity(sub)

	if err := repo.db.WithContext(ctx).Create(subM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSubscription
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription")
	}

	sub.ID = subM.ID
	sub.CreatedAt = subM.CreatedAt

	return nil
}

// Delete removes the subscription row.
func (repo *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.SubscriptionModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete subscription")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

// Exists reports whether subscriberID follows channelID.
func (repo *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check subscription existence")
	}

	return count > 0, nil
}

// CountByChannel returns the channel's subscriber count.
func (repo *subscriptionRepository) CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count subscribers")
	}

	return count, nil
}

// CountBySubscriber returns how many channels the user follows.
func (repo *subscriptionRepository) CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.SubscriptionModel{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count subscribed channels")
	}

	return count, nil
}

// ListSubscribers returns the public profiles of a channel's subscribers.
func (repo *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*entity.PublicUser, error) {
	var subModels []*model.SubscriptionModel

	if err := repo.db.WithContext(ctx).
		Preload("Subscriber").
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Find(&subModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list subscribers")
	}

	users := make([]*entity.PublicUser, 0, len(subModels))
	for _, subM := range subModels {
		if subM.Subscriber == nil {
			continue
		}
		users = append(users, subM.Subscriber.ToEntity().Public())
	}

	return users, nil
}

// ListChannels returns the public profiles of the channels a user follows.
func (repo *subscriptionRepository) ListChannels(ctx context.Context, subscriberID uuid.UUID) ([]*entity.PublicUser, error) {
	var subModels []*model.SubscriptionModel

	if err := repo.db.WithContext(ctx).
		Preload("Channel").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Find(&subModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list subscribed channels")
	}

	users := make([]*entity.PublicUser, 0, len(subModels))
	for _, subM := range subModels {
		if subM.Channel == nil {
			continue
		}
		users = append(users, subM.Channel.ToEntity().Public())
	}

	return users, nil
}
