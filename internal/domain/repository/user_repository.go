package repository

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrRefreshTokenMismatch is returned when a conditional refresh-token
	// rotation matched no row: the presented token was already rotated out
	// or revoked.
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")
)

// UserRepository defines persistence operations for user accounts,
// including the single-live-refresh-token session state that lives on
// the user row.
type UserRepository interface {
	// Create persists a new user. Username and email uniqueness is enforced
	// by the store; violations surface as ErrDuplicateUser.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by lower-cased username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByLogin retrieves a user whose username OR email equals login
	// (both stored lower-cased).
	FindByLogin(ctx context.Context, login string) (*entity.User, error)

	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// SetRefreshTokenHash unconditionally overwrites the stored refresh
	// token hash. This is the login rotation point; an empty hash revokes
	// the session (logout).
	SetRefreshTokenHash(ctx context.Context, userID uuid.UUID, hash string) error

	// RotateRefreshTokenHash replaces the stored hash only if it currently
	// equals oldHash, as a single conditional update. Returns
	// ErrRefreshTokenMismatch when no row matched, which is how concurrent
	// refreshes with the same stale token are serialized to one winner.
	RotateRefreshTokenHash(ctx context.Context, userID uuid.UUID, oldHash, newHash string) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// UpdateProfile updates mutable profile fields (fullname, avatar, cover).
	UpdateProfile(ctx context.Context, user *entity.User) error

	// AppendWatchHistory records that the user watched a video now.
	AppendWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error

	// ListWatchHistory returns the user's watch history, most recent first,
	// each entry expanded with the video and its owner's public fields.
	ListWatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error)
}
