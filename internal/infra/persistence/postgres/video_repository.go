package postgres

import (
	"context"
	"fmt"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// videoSortColumns whitelists the columns a listing may be ordered by.
var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"views":     "views",
	"duration":  "duration",
}

// videoRepository implements the repository.VideoRepository interface.
type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository is the constructor for videoRepository.
func NewVideoRepository(db *gorm.DB) repository.VideoRepository {
	return &videoRepository{
		db: db,
	}
}

// Create persists a new video.
func (repo *videoRepository) Create(ctx context.Context, video *entity.Video) error {
	videoM := model.VideoModelFromEntity(video)

	if err := repo.db.WithContext(ctx).Create(videoM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create video")
	}

	// Update the entity with generated values
	video.ID = videoM.ID
	video.CreatedAt = videoM.CreatedAt
	video.UpdatedAt = videoM.UpdatedAt

	return nil
}

// FindByID retrieves a video by its unique ID.
func (repo *videoRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Video, error) {
	var videoM model.VideoModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&videoM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVideoNotFound
		}

		return nil, errors.Wrap(err, "failed to find video by ID")
	}

	return videoM.ToEntity(), nil
}

// FindByIDWithOwner retrieves a video joined with its owner's public fields.
func (repo *videoRepository) FindByIDWithOwner(ctx context.Context, id uuid.UUID) (*entity.VideoWithOwner, error) {
	var videoM model.VideoModel

	if err := repo.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&videoM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVideoNotFound
		}

		return nil, errors.Wrap(err, "failed to find video with owner")
	}

	return videoM.ToEntityWithOwner(), nil
}

// Exists reports whether a video with the given ID exists.
func (repo *videoRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check video existence")
	}

	return count > 0, nil
}

// ListByOwner returns one page of the owner's videos with an exact total.
func (repo *videoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[*entity.Video], error) {
	page = page.Normalize()

	query := repo.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("owner_id = ?", ownerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count videos by owner")
	}

	var videoModels []*model.VideoModel
	if err := query.
		Order(orderClause(videoSortColumns, page)).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&videoModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list videos by owner")
	}

	videos := make([]*entity.Video, 0, len(videoModels))
	for _, videoM := range videoModels {
		videos = append(videos, videoM.ToEntity())
	}

	return &repository.Page[*entity.Video]{
		Items:    videos,
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

// Update persists changed metadata fields of an existing video.
func (repo *videoRepository) Update(ctx context.Context, video *entity.Video) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("id = ?", video.ID).
		Updates(map[string]any{
			"title":         video.Title,
			"description":   video.Description,
			"thumbnail_url": video.ThumbnailURL,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update video")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// Delete removes a video and its dependent rows.
func (repo *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.VideoModel{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete video")
		}
		if result.RowsAffected == 0 {
			return repository.ErrVideoNotFound
		}

		// Dependent rows have no cascading constraint; clean them up here.
		if err := tx.Where("video_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete video comments")
		}
		if err := tx.Where("target_id = ? AND target_kind = ?", id, string(entity.LikeTargetVideo)).
			Delete(&model.LikeModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete video likes")
		}
		if err := tx.Where("video_id = ?", id).Delete(&model.PlaylistVideoModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete playlist memberships")
		}

		return nil
	})
}

// IncrementViews bumps the view counter atomically in a single statement.
func (repo *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VideoModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment views")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

// TogglePublished flips the publish flag in a single statement and reads the
// new value back.
func (repo *videoRepository) TogglePublished(ctx context.Context, id uuid.UUID) (bool, error) {
	var published bool

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.VideoModel{}).
			Where("id = ?", id).
			UpdateColumn("is_published", gorm.Expr("NOT is_published"))
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to toggle publish state")
		}
		if result.RowsAffected == 0 {
			return repository.ErrVideoNotFound
		}

		if err := tx.Model(&model.VideoModel{}).
			Where("id = ?", id).
			Select("is_published").
			Scan(&published).Error; err != nil {
			return errors.Wrap(err, "failed to read publish state")
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return published, nil
}

// FindLikedBy returns all videos the user has liked, most recently liked first.
func (repo *videoRepository) FindLikedBy(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error) {
	var videoModels []*model.VideoModel

	if err := repo.db.WithContext(ctx).
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_kind = ?", string(entity.LikeTargetVideo)).
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&videoModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find liked videos")
	}

	videos := make([]*entity.Video, 0, len(videoModels))
	for _, videoM := range videoModels {
		videos = append(videos, videoM.ToEntity())
	}

	return videos, nil
}

// orderClause maps the requested sort key through the column whitelist.
// Sort keys are validated upstream; a key that still misses the whitelist
// orders by created_at.
func orderClause(whitelist map[string]string, page repository.PageRequest) string {
	column, ok := whitelist[page.SortBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if page.Direction == repository.SortAsc {
		direction = "ASC"
	}

	return fmt.Sprintf("%s %s", column, direction)
}
