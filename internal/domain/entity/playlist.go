package entity

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is an ordered collection of videos curated by one owner.
// The (owner, name) pair is unique.
type Playlist struct {
	ID          uuid.UUID   `json:"id"`
	OwnerID     uuid.UUID   `json:"ownerId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	VideoIDs    []uuid.UUID `json:"videoIds"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
