package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription records that one user (the subscriber) follows another
// user's channel. Like a Like, it is a pure existence edge: at most one
// row per (subscriber, channel) pair.
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriberId"`
	ChannelID    uuid.UUID `json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}
