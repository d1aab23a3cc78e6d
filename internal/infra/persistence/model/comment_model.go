package model

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// ToEntity converts the GORM model to a domain entity.
func (m *CommentModel) ToEntity() *entity.Comment {
	return &entity.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CommentModelFromEntity converts a domain entity to the GORM model.
func CommentModelFromEntity(comment *entity.Comment) *CommentModel {
	return &CommentModel{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		OwnerID:   comment.OwnerID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}
