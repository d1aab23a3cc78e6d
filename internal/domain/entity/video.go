package entity

import (
	"time"

	"github.com/google/uuid"
)

// Video represents a published (or draft) video on a channel.
type Video struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"ownerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Duration     float64   `json:"duration"` // seconds
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VideoWithOwner is a video joined with its owner's public fields,
// used by read paths that expand one level of ownership.
type VideoWithOwner struct {
	Video
	Owner *PublicUser `json:"owner"`
}
