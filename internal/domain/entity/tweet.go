package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tweet is a short text post on a channel, independent of any video.
type Tweet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
