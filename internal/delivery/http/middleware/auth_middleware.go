package middleware

import (
	"strings"

	"vidtube/internal/delivery/http/response"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// AccessTokenCookie is the cookie carrying the access token.
	AccessTokenCookie = "accessToken"

	// ContextKeyUserID is the echo context key for the authenticated user id.
	ContextKeyUserID = "userID"

	// ContextKeyIdentity is the echo context key for the full token claims.
	ContextKeyIdentity = "identity"
)

// AuthMiddleware provides middleware for JWT authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the access token and rejects requests without one.
// The cookie takes precedence over the Authorization header.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := extractAccessToken(c)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHORIZED", err.Error())
		}

		ok, err := m.establishIdentity(c, tokenString)
		if !ok {
			return err
		}

		return next(c)
	}
}

// OptionalAuthenticate validates the access token when one is present but
// lets anonymous requests through. Used by read paths whose behavior varies
// with the viewer (view counting, subscription state).
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := extractAccessToken(c)
		if err != nil {
			return next(c)
		}

		// A presented but invalid token is rejected rather than demoted
		// to anonymous, so clients notice expired sessions.
		ok, err := m.establishIdentity(c, tokenString)
		if !ok {
			return err
		}

		return next(c)
	}
}

// establishIdentity verifies the token and confirms the identity it names
// still exists, then stores it on the echo context. A token for a deleted
// account gets the same response as a bad signature, so callers cannot
// probe which ids ever existed. On failure the response has already been
// written and the returned error is its result.
func (m *AuthMiddleware) establishIdentity(c echo.Context, tokenString string) (bool, error) {
	claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
	if err != nil {
		return false, response.Unauthorized(c, "INVALID_ACCESS_TOKEN", "Invalid or expired access token")
	}

	exists, err := m.userRepo.Exists(c.Request().Context(), claims.UserID)
	if err != nil {
		return false, response.InternalServerError(c, "INTERNAL_ERROR", "Failed to verify identity")
	}
	if !exists {
		return false, response.Unauthorized(c, "INVALID_ACCESS_TOKEN", "Invalid or expired access token")
	}

	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyIdentity, claims)

	return true, nil
}

// extractAccessToken pulls the raw token from the cookie or, failing that,
// the Bearer authorization header.
func extractAccessToken(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingCredentials
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", errInvalidBearerFormat
	}

	return tokenString, nil
}

var (
	errMissingCredentials  = errors.New("authorization credentials are missing")
	errInvalidBearerFormat = errors.New("invalid token format, must be Bearer token")
)
