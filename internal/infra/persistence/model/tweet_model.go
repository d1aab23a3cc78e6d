package model

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// TweetModel mirrors the 'tweets' table.
type TweetModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TweetModel) TableName() string {
	return "tweets"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TweetModel) ToEntity() *entity.Tweet {
	return &entity.Tweet{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TweetModelFromEntity converts a domain entity to the GORM model.
func TweetModelFromEntity(tweet *entity.Tweet) *TweetModel {
	return &TweetModel{
		ID:        tweet.ID,
		OwnerID:   tweet.OwnerID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: tweet.UpdatedAt,
	}
}
