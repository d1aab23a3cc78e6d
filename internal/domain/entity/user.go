// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. Every channel is a user: a
// "channel" is simply the public face of an account other people can
// subscribe to.
type User struct {
	ID               uuid.UUID // The unique identifier for this account.
	Username         string    // Unique handle, stored lower-cased.
	Email            string    // Unique contact email, stored lower-cased.
	Fullname         string    // Display name shown on the channel page.
	PasswordHash     string    // bcrypt hash of the account password.
	RefreshTokenHash string    // SHA-256 hash of the single live refresh token; empty when logged out.
	AvatarURL        string    // Public URL of the avatar image.
	CoverImageURL    string    // Public URL of the channel cover image, optional.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PublicUser is the subset of User safe to expose in responses and joins.
// Password and refresh-token material never leave the persistence layer
// through this type.
type PublicUser struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Fullname      string    `json:"fullname"`
	AvatarURL     string    `json:"avatarUrl"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Public strips credential material from a User.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Fullname:      u.Fullname,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
	}
}

// ChannelProfile is the computed public view of a channel: identity fields
// plus derived subscription counts and the caller's own subscription state.
type ChannelProfile struct {
	User            *PublicUser `json:"user"`
	SubscriberCount int64       `json:"subscriberCount"`
	SubscribedTo    int64       `json:"subscribedToCount"`
	IsSubscribed    bool        `json:"isSubscribed"`
}

// WatchEntry is one item of a user's watch history, expanded with the
// watched video and its owner's public fields.
type WatchEntry struct {
	Video     *Video      `json:"video"`
	Owner     *PublicUser `json:"owner"`
	WatchedAt time.Time   `json:"watchedAt"`
}
