package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ToggleLikeInput identifies the relation to flip.
type ToggleLikeInput struct {
	UserID     uuid.UUID
	TargetID   uuid.UUID
	TargetKind entity.LikeTarget
}

// ToggleOutput is the state of a toggle relation after the operation.
type ToggleOutput struct {
	Active bool  `json:"active"`
	Count  int64 `json:"count"`
}

// LikeUsecase defines the toggle operations over the generic
// (user, target, kind) like relation.
type LikeUsecase interface {
	// Toggle flips the relation for the caller and returns the new state
	// plus the target's like count. Toggling is idempotent under races:
	// concurrent toggles of the same absent relation converge on a single
	// stored row.
	Toggle(ctx context.Context, input *ToggleLikeInput) (*ToggleOutput, error)

	// Count returns how many users currently like the target.
	Count(ctx context.Context, targetID uuid.UUID, kind entity.LikeTarget) (int64, error)

	// IsLiked reports whether the user currently likes the target.
	IsLiked(ctx context.Context, userID, targetID uuid.UUID, kind entity.LikeTarget) (bool, error)
}
