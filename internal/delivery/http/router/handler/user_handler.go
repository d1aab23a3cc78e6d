package handler

import (
	"log/slog"
	"net/http"
	"time"

	"vidtube/internal/delivery/http/middleware"
	"vidtube/internal/delivery/http/response"
	"vidtube/internal/domain/service"
	"vidtube/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RefreshTokenCookie is the cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// UserHandler holds dependencies for account and session handlers.
type UserHandler struct {
	uc       usecase.UserUsecase
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, tokenSvc service.TokenService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Fullname string `json:"fullname" validate:"required,max=128"`
	Password string `json:"password" validate:"required"`
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Fullname: req.Fullname,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles the login request. On success the token pair is returned in
// the body and mirrored into http-only cookies.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Login:    req.Login,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, output, "Login successful")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh rotates the session's refresh token. The token is read from the
// cookie first, then from the body for non-browser clients.
func (h *UserHandler) Refresh(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var req refreshRequest
		if err := c.Bind(&req); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
		}
		refreshToken = req.RefreshToken
	}
	if refreshToken == "" {
		return response.Unauthorized(c, "UNAUTHORIZED", "Refresh token is missing")
	}

	output, err := h.uc.Refresh(c.Request().Context(), &usecase.RefreshInput{RefreshToken: refreshToken})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setAuthCookies(c, output.AccessToken, output.RefreshToken)

	return response.Success(c, http.StatusOK, output, "Token refreshed successfully")
}

// Logout revokes the live session and clears the auth cookies.
func (h *UserHandler) Logout(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	h.clearAuthCookies(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePassword verifies the old password and replaces it.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.ChangePasswordInput{
		UserID:      userID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}
	if err := h.uc.ChangePassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// CurrentUser returns the caller's public profile.
func (h *UserHandler) CurrentUser(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	user, err := h.uc.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Current user retrieved successfully")
}

type updateProfileRequest struct {
	Fullname string `json:"fullname" validate:"required,max=128"`
}

// UpdateProfile updates the caller's mutable profile fields.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		UserID:   userID,
		Fullname: req.Fullname,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}

func (h *UserHandler) setAuthCookies(c echo.Context, accessToken, refreshToken string) {
	setAuthCookie(c, middleware.AccessTokenCookie, accessToken, h.tokenSvc.AccessTokenDuration())
	setAuthCookie(c, RefreshTokenCookie, refreshToken, h.tokenSvc.RefreshTokenDuration())
}

func (h *UserHandler) clearAuthCookies(c echo.Context) {
	setAuthCookie(c, middleware.AccessTokenCookie, "", -time.Second)
	setAuthCookie(c, RefreshTokenCookie, "", -time.Second)
}

func setAuthCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
