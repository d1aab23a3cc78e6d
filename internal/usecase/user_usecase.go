// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Fullname string
	Password string
}

// LoginInput defines the data required to log in. Login accepts either the
// username or the email address.
type LoginInput struct {
	Login    string
	Password string
}

// RefreshInput carries the raw refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
}

// ChangePasswordInput defines the data required to change the account password.
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UpdateProfileInput defines the mutable profile fields.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Fullname string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's public information.
type RegisterOutput struct {
	User *entity.PublicUser
}

// LoginOutput returns the generated token pair after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.PublicUser
}

// RefreshOutput returns the rotated token pair.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates a new account with a hashed password.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies credentials and establishes the single live session,
	// replacing any previous one.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Refresh rotates the refresh token: the presented token is verified
	// against the stored hash and atomically replaced by a new one. A token
	// that was already rotated out is rejected.
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)

	// Logout revokes the live session. Subsequent refreshes fail until the
	// next login.
	Logout(ctx context.Context, userID uuid.UUID) error

	// ChangePassword verifies the old password and replaces the hash.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// CurrentUser returns the caller's public profile.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)

	// UpdateProfile updates the caller's mutable profile fields.
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.PublicUser, error)
}
