package entity

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget is the kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Valid reports whether t is a known like target kind.
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}

	return false
}

// Like is an idempotent on/off edge between a user and a target entity.
// Existence means "liked"; there is at most one row per
// (user, target, kind), enforced by a uniqueness constraint in the store.
type Like struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	TargetID   uuid.UUID  `json:"targetId"`
	TargetKind LikeTarget `json:"targetKind"`
	CreatedAt  time.Time  `json:"createdAt"`
}
