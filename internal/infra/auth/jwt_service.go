// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"vidtube/config"
	"vidtube/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     cfg.SecretKey.AccessTTL,
		refreshTTL:    cfg.SecretKey.RefreshTTL,
	}, nil
}

// GenerateAccessToken creates a short-lived token carrying the user's identity,
// so handlers can authorize without a database round trip.
func (s *jwtService) GenerateAccessToken(identity service.TokenIdentity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      identity.UserID.String(),
		"username": identity.Username,
		"email":    identity.Email,
		"fullname": identity.Fullname,
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.accessSecret))
}

// GenerateRefreshToken creates a longer-lived token carrying only the user id.
// The jti claim makes every issued token distinct, so rotating to a new token
// always changes the stored hash even within the same second.
func (s *jwtService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"jti":  uuid.New().String(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.refreshTTL).Unix(),
		"type": "refresh",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.refreshSecret))
}

// ValidateAccessToken verifies the token against the access key class and
// returns the embedded identity claims.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.AccessClaims, error) {
	claims, err := s.parseToken(tokenString, s.accessSecret, "access")
	if err != nil {
		return nil, err
	}

	userID, err := subjectUUID(claims)
	if err != nil {
		return nil, err
	}

	return &service.AccessClaims{
		UserID:   userID,
		Username: stringClaim(claims, "username"),
		Email:    stringClaim(claims, "email"),
		Fullname: stringClaim(claims, "fullname"),
	}, nil
}

// ValidateRefreshToken verifies the token against the refresh key class and
// returns the embedded user id.
func (s *jwtService) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.parseToken(tokenString, s.refreshSecret, "refresh")
	if err != nil {
		return uuid.Nil, err
	}

	return subjectUUID(claims)
}

// HashToken returns the hex-encoded SHA-256 digest of a raw token.
// Only digests are ever persisted; comparison is exact-value.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// AccessTokenDuration returns the configured duration for access tokens.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// parseToken validates signature, expiry, and the embedded token type against
// the given key class. A token signed with the other class's secret fails the
// signature check; a token of the wrong type fails the type check.
func (s *jwtService) parseToken(tokenString, secret, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if stringClaim(claims, "type") != wantType {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

func subjectUUID(claims jwt.MapClaims) (uuid.UUID, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, jwt.ErrTokenInvalidSubject
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, jwt.ErrTokenInvalidSubject
	}

	return userID, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)

	return value
}
