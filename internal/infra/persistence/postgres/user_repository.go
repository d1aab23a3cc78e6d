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

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		db: db,
	}
}

// Create persists a new user account.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := model.UserModelFromEntity(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateUser
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the entity with generated values
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a user by its unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by ID")
	}

	return userM.ToEntity(), nil
}

// FindByUsername retrieves a user by its lower-cased username.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return userM.ToEntity(), nil
}

// FindByLogin retrieves a user whose username or email matches the login.
func (repo *userRepository) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by login")
	}

	return userM.ToEntity(), nil
}

// Exists reports whether a user with the given ID exists.
func (repo *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check user existence")
	}

	return count > 0, nil
}

// SetRefreshTokenHash unconditionally overwrites the stored refresh token
// hash. Login and logout both land here; logout writes the empty string.
func (repo *userRepository) SetRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("refresh_token_hash", hash)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set refresh token hash")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// RotateRefreshTokenHash performs the compare-and-swap at the heart of
// refresh rotation: the hash is replaced only if it still equals oldHash.
// Concurrent refreshes with the same stale token race on this statement
// and exactly one of them matches the row.
func (repo *userRepository) RotateRefreshTokenHash(ctx context.Context, userID uuid.UUID, oldHash, newHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ? AND refresh_token_hash = ?", userID, oldHash).
		Update("refresh_token_hash", newHash)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to rotate refresh token hash")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenMismatch
	}

	return nil
}

// UpdatePasswordHash replaces the stored password hash.
func (repo *userRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update password hash")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateProfile updates the mutable profile fields of an existing user.
func (repo *userRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"fullname":        user.Fullname,
			"avatar_url":      user.AvatarURL,
			"cover_image_url": user.CoverImageURL,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update user profile")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// AppendWatchHistory records that the user watched a video now.
func (repo *userRepository) AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	entry := &model.WatchHistoryModel{
		UserID:  userID,
		VideoID: videoID,
	}

	if err := repo.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrVideoNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to append watch history")
	}

	return nil
}

// ListWatchHistory returns the user's watch history, most recent first, each
// entry joined with the watched video and its owner's public fields.
func (repo *userRepository) ListWatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error) {
	var historyModels []*model.WatchHistoryModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Find(&historyModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list watch history")
	}

	if len(historyModels) == 0 {
		return []*entity.WatchEntry{}, nil
	}

	videoIDs := make([]uuid.UUID, 0, len(historyModels))
	for _, historyM := range historyModels {
		videoIDs = append(videoIDs, historyM.VideoID)
	}

	var videoModels []*model.VideoModel
	if err := repo.db.WithContext(ctx).
		Preload("Owner").
		Where("id IN ?", videoIDs).
		Find(&videoModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load watched videos")
	}

	videosByID := make(map[uuid.UUID]*model.VideoModel, len(videoModels))
	for _, videoM := range videoModels {
		videosByID[videoM.ID] = videoM
	}

	entries := make([]*entity.WatchEntry, 0, len(historyModels))
	for _, historyM := range historyModels {
		videoM, ok := videosByID[historyM.VideoID]
		if !ok {
			// The video was deleted after being watched; skip the entry.
			continue
		}

		entry := &entity.WatchEntry{
			Video:     videoM.ToEntity(),
			WatchedAt: historyM.WatchedAt,
		}
		if videoM.Owner != nil {
			entry.Owner = videoM.Owner.ToEntity().Public()
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
