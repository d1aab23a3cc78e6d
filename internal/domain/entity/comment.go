package entity

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user's comment on a video.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"videoId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
