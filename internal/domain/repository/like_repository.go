package repository

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for like persistence.
var (
	// ErrLikeNotFound is returned when no like row exists for the key.
	ErrLikeNotFound = errors.New("like not found")
	// ErrDuplicateLike is returned when a create hits the uniqueness
	// constraint: the relation already exists. The toggle engine treats
	// this as the already-on state, never as a failure.
	ErrDuplicateLike = errors.New("like already exists")
)

// LikeRepository defines persistence operations for the generic
// (user, target, kind) toggle relation.
type LikeRepository interface {
	// Create inserts the relation row. A uniqueness violation on
	// (user, target, kind) surfaces as ErrDuplicateLike.
	Create(ctx context.Context, like *entity.Like) error

	// Delete removes the relation row. Returns ErrLikeNotFound if the
	// relation did not exist.
	Delete(ctx context.Context, userID, targetID uuid.UUID, kind entity.LikeTarget) error

	// Exists reports whether the relation row exists.
	Exists(ctx context.Context, userID, targetID uuid.UUID, kind entity.LikeTarget) (bool, error)

	// CountByTarget returns how many users have the relation on.
	CountByTarget(ctx context.Context, targetID uuid.UUID, kind entity.LikeTarget) (int64, error)
}
