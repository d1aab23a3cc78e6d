package model

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// LikeModel mirrors the 'likes' table. The composite unique index is the
// ground truth for the at-most-one-like invariant; concurrent creates for
// the same triple collide here and one of them gets a duplicate-key error.
type LikeModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target,priority:1"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_target,priority:2;index"`
	TargetKind string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_likes_user_target,priority:3"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (LikeModel) TableName() string {
	return "likes"
}

// ToEntity converts the GORM model to a domain entity.
func (m *LikeModel) ToEntity() *entity.Like {
	return &entity.Like{
		ID:         m.ID,
		UserID:     m.UserID,
		TargetID:   m.TargetID,
		TargetKind: entity.LikeTarget(m.TargetKind),
		CreatedAt:  m.CreatedAt,
	}
}

// LikeModelFromEntity converts a domain entity to the GORM model.
func LikeModelFromEntity(like *entity.Like) *LikeModel {
	return &LikeModel{
		ID:         like.ID,
		UserID:     like.UserID,
		TargetID:   like.TargetID,
		TargetKind: string(like.TargetKind),
		CreatedAt:  like.CreatedAt,
	}
}
