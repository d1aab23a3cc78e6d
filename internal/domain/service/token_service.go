// Package service defines domain service interfaces implemented by the
// infrastructure layer.
package service

import (
	"time"

	"github.com/google/uuid"
)

// AccessClaims are the decoded contents of an access token.
type AccessClaims struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Fullname string
}

// TokenIdentity is the identity material embedded into an access token.
type TokenIdentity struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Fullname string
}

// TokenService issues and verifies the two classes of signed, time-bound
// tokens. The two key classes use independent secrets and must never be
// interchanged: verifying an access token against the refresh class (or
// vice versa) fails.
type TokenService interface {
	// GenerateAccessToken creates a short-lived access token embedding the
	// full token identity.
	GenerateAccessToken(identity TokenIdentity) (string, error)

	// GenerateRefreshToken creates a longer-lived refresh token embedding
	// only the user id.
	GenerateRefreshToken(userID uuid.UUID) (string, error)

	// ValidateAccessToken verifies signature, expiry, and key class.
	ValidateAccessToken(token string) (*AccessClaims, error)

	// ValidateRefreshToken verifies signature, expiry, and key class,
	// returning the embedded user id.
	ValidateRefreshToken(token string) (uuid.UUID, error)

	// HashToken returns a deterministic digest of a raw token, suitable for
	// storage and exact-value comparison. Raw tokens are never persisted.
	HashToken(token string) string

	// AccessTokenDuration returns the configured access token TTL.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token TTL.
	RefreshTokenDuration() time.Duration
}
