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

// playlistRepository implements the repository.PlaylistRepository interface.
type playlistRepository struct {
	db *gorm.DB
}

// NewPlaylistRepository is the constructor for playlistRepository.
func NewPlaylistRepository(db *gorm.DB) repository.PlaylistRepository {
	return &playlistRepository{
		db: db,
	}
}

// Create persists a new playlist.
func (repo *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist) error {
	playlistM := model.PlaylistModelFromEntity(playlist)

	if err := repo.db.WithContext(ctx).Create(playlistM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicatePlaylist
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create playlist")
	}

	playlist.ID = playlistM.ID
	playlist.CreatedAt = playlistM.CreatedAt
	playlist.UpdatedAt = playlistM.UpdatedAt

	return nil
}

// FindByID retrieves a playlist with its ordered video ids.
func (repo *playlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error) {
	var playlistM model.PlaylistModel

	if err := repo.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&playlistM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPlaylistNotFound
		}

		return nil, errors.Wrap(err, "failed to find playlist by ID")
	}

	return playlistM.ToEntity(), nil
}

// ListByOwner returns all playlists of a user.
func (repo *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	var playlistModels []*model.PlaylistModel

	if err := repo.db.WithContext(ctx).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&playlistModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list playlists by owner")
	}

	playlists := make([]*entity.Playlist, 0, len(playlistModels))
	for _, playlistM := range playlistModels {
		playlists = append(playlists, playlistM.ToEntity())
	}

	return playlists, nil
}

// AddVideo appends a video at the end of the playlist. The position is
// assigned inside a transaction so concurrent adds cannot share a slot.
func (repo *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.PlaylistModel{}).
			Where("id = ?", playlistID).
			Count(&exists).Error; err != nil {
			return errors.Wrap(err, "failed to check playlist existence")
		}
		if exists == 0 {
			return repository.ErrPlaylistNotFound
		}

		var maxPosition int
		if err := tx.Model(&model.PlaylistVideoModel{}).
			Where("playlist_id = ?", playlistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPosition).Error; err != nil {
			return errors.Wrap(err, "failed to read max playlist position")
		}

		entry := &model.PlaylistVideoModel{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   maxPosition + 1,
		}
		if err := tx.Create(entry).Error; err != nil {
			if isUniqueConstraintViolation(err) {
				return repository.ErrVideoAlreadyInPlaylist
			}
			if isForeignKeyConstraintViolation(err) {
				return repository.ErrVideoNotFound
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to add video to playlist")
		}

		return nil
	})
}

// RemoveVideo removes a video from the playlist.
func (repo *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideoModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove video from playlist")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVideoNotInPlaylist
	}

	return nil
}

// Update persists changed name and description.
func (repo *playlistRepository) Update(ctx context.Context, playlist *entity.Playlist) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PlaylistModel{}).
		Where("id = ?", playlist.ID).
		Updates(map[string]any{
			"name":        playlist.Name,
			"description": playlist.Description,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicatePlaylist
		}

		return errors.Wrap(result.Error, "failed to update playlist")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPlaylistNotFound
	}

	return nil
}

// Delete removes a playlist and its membership rows.
func (repo *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.PlaylistModel{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete playlist")
		}
		if result.RowsAffected == 0 {
			return repository.ErrPlaylistNotFound
		}

		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistVideoModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete playlist memberships")
		}

		return nil
	})
}
