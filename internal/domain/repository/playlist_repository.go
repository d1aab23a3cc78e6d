package repository

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for playlist persistence.
var (
	// ErrPlaylistNotFound is returned when a playlist is not found.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrDuplicatePlaylist is returned when the owner already has a playlist
	// with the same name.
	ErrDuplicatePlaylist = errors.New("playlist name already exists for this owner")
	// ErrVideoAlreadyInPlaylist is returned when adding a video that the
	// playlist already contains.
	ErrVideoAlreadyInPlaylist = errors.New("video already in playlist")
	// ErrVideoNotInPlaylist is returned when removing a video the playlist
	// does not contain.
	ErrVideoNotInPlaylist = errors.New("video not in playlist")
)

// PlaylistRepository defines persistence operations for playlists and
// their video membership.
type PlaylistRepository interface {
	// Create persists a new playlist. (owner, name) uniqueness is enforced
	// by the store; violations surface as ErrDuplicatePlaylist.
	Create(ctx context.Context, playlist *entity.Playlist) error

	// FindByID retrieves a playlist with its ordered video ids.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Playlist, error)

	// ListByOwner returns all playlists of a user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error)

	// AddVideo appends a video to the playlist. Duplicate membership
	// surfaces as ErrVideoAlreadyInPlaylist.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error

	// RemoveVideo removes a video from the playlist.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error

	// Update persists changed name/description.
	Update(ctx context.Context, playlist *entity.Playlist) error

	// Delete removes a playlist and its membership rows.
	Delete(ctx context.Context, id uuid.UUID) error
}
