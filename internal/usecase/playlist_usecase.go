package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// CreatePlaylistInput defines the data required to create a playlist.
type CreatePlaylistInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
}

// UpdatePlaylistInput defines the mutable fields of a playlist.
type UpdatePlaylistInput struct {
	PlaylistID  uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
}

// PlaylistVideoInput identifies a playlist membership operation.
type PlaylistVideoInput struct {
	PlaylistID uuid.UUID
	VideoID    uuid.UUID
	OwnerID    uuid.UUID
}

// PlaylistUsecase defines the business operations over playlists.
type PlaylistUsecase interface {
	// Create creates an empty playlist. The (owner, name) pair is unique.
	Create(ctx context.Context, input *CreatePlaylistInput) (*entity.Playlist, error)

	// Get retrieves a playlist with its ordered video ids.
	Get(ctx context.Context, playlistID uuid.UUID) (*entity.Playlist, error)

	// ListByOwner returns all playlists of a user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error)

	// AddVideo appends an existing video to the playlist. Only the owner
	// may modify membership.
	AddVideo(ctx context.Context, input *PlaylistVideoInput) error

	// RemoveVideo removes a video from the playlist.
	RemoveVideo(ctx context.Context, input *PlaylistVideoInput) error

	// Update renames the playlist or changes its description.
	Update(ctx context.Context, input *UpdatePlaylistInput) (*entity.Playlist, error)

	// Delete removes the playlist. Videos themselves are untouched.
	Delete(ctx context.Context, playlistID, ownerID uuid.UUID) error
}
