// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the account registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	srv.log(ctx).Info("Starting registration", slog.String("username", username), slog.String("email", email))

	// 1. Validate the password before any persistence work.
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "password does not meet security requirements")
	}

	// 2. Hash the password (bcrypt is CPU-bound, done before touching the database).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	// 3. Create the account; the store's uniqueness constraints are the
	// arbiter for duplicate usernames and emails.
	newUser := &entity.User{
		Username:     username,
		Email:        email,
		Fullname:     strings.TrimSpace(input.Fullname),
		PasswordHash: hashedPassword,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			srv.log(ctx).Warn("Registration rejected, duplicate user", slog.String("username", username))

			return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "registration failed")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser.Public()}, nil
}

// Login verifies credentials and establishes the single live session.
// Any previously issued refresh token is invalidated by the overwrite.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	login := strings.ToLower(strings.TrimSpace(input.Login))

	srv.log(ctx).Debug("Starting user login", slog.String("login", login))

	// 1. Load the account by username or email.
	user, err := srv.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("login", login), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// 2. Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("login", login), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// 3. Generate the token pair.
	accessToken, refreshToken, err := srv.generateTokenPair(user)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("login", login), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	// 4. Store only the hash of the refresh token. The unconditional write
	// makes this login the single live session.
	if err := srv.userRepo.SetRefreshTokenHash(ctx, user.ID, srv.tokenService.HashToken(refreshToken)); err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("login", login), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store refresh token during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

// Refresh rotates the refresh token. The presented token must verify against
// the refresh key class AND match the stored hash; the replacement is a
// single compare-and-swap so a stale token can never win a race.
func (srv *userService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Info("Attempting to refresh session")

	// 1. Structural verification: signature, expiry, key class.
	userID, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidRefreshToken, "refresh token validation failed")
	}

	// 2. Load the user for the new access token's identity claims.
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidRefreshToken, "refresh token user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user for refresh")
	}

	// 3. Generate the replacement pair.
	accessToken, newRefreshToken, err := srv.generateTokenPair(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens during refresh")
	}

	// 4. Compare-and-swap the stored hash. A mismatch means the presented
	// token was already rotated out or revoked; surfacing that distinctly
	// lets clients treat it as a terminated session rather than a bug.
	oldHash := srv.tokenService.HashToken(input.RefreshToken)
	newHash := srv.tokenService.HashToken(newRefreshToken)
	if err := srv.userRepo.RotateRefreshTokenHash(ctx, user.ID, oldHash, newHash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenMismatch) {
			srv.log(ctx).Warn("Refresh token reuse detected", slog.Any("userID", user.ID))

			return nil, errors.Wrap(domainerrors.ErrRefreshTokenReused, "refresh failed")
		}

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	srv.log(ctx).Debug("Session refreshed", slog.Any("userID", user.ID))

	return &usecase.RefreshOutput{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout revokes the live session by clearing the stored refresh token hash.
// Logout is terminal: a refresh token that survives on the client is useless
// afterwards.
func (srv *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Attempting to log out", slog.Any("userID", userID))

	if err := srv.userRepo.SetRefreshTokenHash(ctx, userID, ""); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "logout failed")
		}

		srv.log(ctx).Error("Failed to clear refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to clear refresh token")
	}

	srv.log(ctx).Info("Successfully logged out", slog.Any("userID", userID))

	return nil
}

// ChangePassword verifies the old password and replaces the stored hash.
func (srv *userService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Attempting to change password", slog.Any("userID", input.UserID))

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "change password failed")
		}

		return errors.Wrap(err, "failed to load user for password change")
	}

	if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected, old password mismatch", slog.Any("userID", input.UserID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "old password mismatch")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, "new password does not meet security requirements")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	if err := srv.userRepo.UpdatePasswordHash(ctx, input.UserID, newHash); err != nil {
		return errors.Wrap(err, "failed to update password hash")
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", input.UserID))

	return nil
}

// CurrentUser returns the caller's public profile.
func (srv *userService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "current user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user.Public(), nil
}

// UpdateProfile updates the caller's mutable profile fields.
func (srv *userService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "profile update failed")
		}

		return nil, errors.Wrap(err, "failed to load user for profile update")
	}

	if fullname := strings.TrimSpace(input.Fullname); fullname != "" {
		user.Fullname = fullname
	}

	if err := srv.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", user.ID))

	return user.Public(), nil
}

// generateTokenPair issues a fresh access/refresh pair for the user.
func (srv *userService) generateTokenPair(user *entity.User) (accessToken, refreshToken string, err error) {
	accessToken, err = srv.tokenService.GenerateAccessToken(service.TokenIdentity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Fullname: user.Fullname,
	})
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err = srv.tokenService.GenerateRefreshToken(user.ID)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate refresh token")
	}

	return accessToken, refreshToken, nil
}
