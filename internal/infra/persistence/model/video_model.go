package model

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// VideoModel mirrors the 'videos' table.
type VideoModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	VideoURL     string    `gorm:"type:text;not null"`
	ThumbnailURL string    `gorm:"type:text"`
	Duration     float64   `gorm:"not null;default:0"`
	Views        int64     `gorm:"not null;default:0"`
	IsPublished  bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (VideoModel) TableName() string {
	return "videos"
}

// ToEntity converts the GORM model to a domain entity.
func (m *VideoModel) ToEntity() *entity.Video {
	return &entity.Video{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Description:  m.Description,
		VideoURL:     m.VideoURL,
		ThumbnailURL: m.ThumbnailURL,
		Duration:     m.Duration,
		Views:        m.Views,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToEntityWithOwner converts the model and its preloaded owner.
func (m *VideoModel) ToEntityWithOwner() *entity.VideoWithOwner {
	result := &entity.VideoWithOwner{Video: *m.ToEntity()}
	if m.Owner != nil {
		result.Owner = m.Owner.ToEntity().Public()
	}

	return result
}

// VideoModelFromEntity converts a domain entity to the GORM model.
func VideoModelFromEntity(video *entity.Video) *VideoModel {
	return &VideoModel{
		ID:           video.ID,
		OwnerID:      video.OwnerID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		Views:        video.Views,
		IsPublished:  video.IsPublished,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}
}
