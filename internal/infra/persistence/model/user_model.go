// Package model holds the GORM-specific structs mirroring database tables,
// plus conversions to and from the domain entities.
package model

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type UserModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Fullname         string    `gorm:"type:varchar(255);not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	RefreshTokenHash string    `gorm:"type:varchar(64);index"`
	AvatarURL        string    `gorm:"type:text"`
	CoverImageURL    string    `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Videos       []VideoModel        `gorm:"foreignKey:OwnerID"`
	WatchHistory []WatchHistoryModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:               m.ID,
		Username:         m.Username,
		Email:            m.Email,
		Fullname:         m.Fullname,
		PasswordHash:     m.PasswordHash,
		RefreshTokenHash: m.RefreshTokenHash,
		AvatarURL:        m.AvatarURL,
		CoverImageURL:    m.CoverImageURL,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// UserModelFromEntity converts a domain entity to the GORM model.
func UserModelFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Fullname:         user.Fullname,
		PasswordHash:     user.PasswordHash,
		RefreshTokenHash: user.RefreshTokenHash,
		AvatarURL:        user.AvatarURL,
		CoverImageURL:    user.CoverImageURL,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// WatchHistoryModel mirrors the 'watch_history' table. Rows are append-only.
type WatchHistoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_watch_history_user_watched,priority:1"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	WatchedAt time.Time `gorm:"not null;index:idx_watch_history_user_watched,priority:2,sort:desc"`
}

// TableName explicitly sets the table name for GORM.
func (WatchHistoryModel) TableName() string {
	return "watch_history"
}
