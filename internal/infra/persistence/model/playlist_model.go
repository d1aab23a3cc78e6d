package model

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// PlaylistModel mirrors the 'playlists' table. The (owner, name) pair is
// unique per the composite index.
type PlaylistModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_playlists_owner_name,priority:1"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_playlists_owner_name,priority:2"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Videos []PlaylistVideoModel `gorm:"foreignKey:PlaylistID"`
}

// TableName explicitly sets the table name for GORM.
func (PlaylistModel) TableName() string {
	return "playlists"
}

// ToEntity converts the GORM model and its membership rows to a domain
// entity, preserving insertion order via Position.
func (m *PlaylistModel) ToEntity() *entity.Playlist {
	videoIDs := make([]uuid.UUID, 0, len(m.Videos))
	for _, v := range m.Videos {
		videoIDs = append(videoIDs, v.VideoID)
	}

	return &entity.Playlist{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		VideoIDs:    videoIDs,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// PlaylistModelFromEntity converts a domain entity to the GORM model.
// Membership rows are managed separately by the repository.
func PlaylistModelFromEntity(playlist *entity.Playlist) *PlaylistModel {
	return &PlaylistModel{
		ID:          playlist.ID,
		OwnerID:     playlist.OwnerID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
}

// PlaylistVideoModel mirrors the 'playlist_videos' join table. A video
// appears at most once per playlist.
type PlaylistVideoModel struct {
	PlaylistID uuid.UUID `gorm:"type:uuid;primaryKey"`
	VideoID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (PlaylistVideoModel) TableName() string {
	return "playlist_videos"
}
