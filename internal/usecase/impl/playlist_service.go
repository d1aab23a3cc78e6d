package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "vidtube/internal/delivery/context"
	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// playlistService implements the PlaylistUsecase interface.
type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	logger       *slog.Logger
}

// PlaylistServiceParams holds dependencies for playlistService, injected by Fx.
type PlaylistServiceParams struct {
	fx.In

	PlaylistRepo repository.PlaylistRepository
	VideoRepo    repository.VideoRepository
	Logger       *slog.Logger
}

// NewPlaylistService is the constructor for playlistService.
func NewPlaylistService(params PlaylistServiceParams) usecase.PlaylistUsecase {
	return &playlistService{
		playlistRepo: params.PlaylistRepo,
		videoRepo:    params.VideoRepo,
		logger:       params.Logger,
	}
}

func (srv *playlistService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create creates an empty playlist.
func (srv *playlistService) Create(ctx context.Context, input *usecase.CreatePlaylistInput) (*entity.Playlist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "playlist name must not be empty")
	}

	playlist := &entity.Playlist{
		OwnerID:     input.OwnerID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}

	if err := srv.playlistRepo.Create(ctx, playlist); err != nil {
		if errors.Is(err, repository.ErrDuplicatePlaylist) {
			return nil, errors.Wrap(domainerrors.ErrConflict, "playlist name already in use")
		}

		return nil, errors.Wrap(err, "failed to create playlist")
	}

	srv.log(ctx).Debug("Playlist created", slog.Any("playlistID", playlist.ID))

	return playlist, nil
}

// Get retrieves a playlist with its ordered video ids.
func (srv *playlistService) Get(ctx context.Context, playlistID uuid.UUID) (*entity.Playlist, error) {
	playlist, err := srv.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "playlist not found")
		}

		return nil, errors.Wrap(err, "failed to load playlist")
	}

	return playlist, nil
}

// ListByOwner returns all playlists of a user.
func (srv *playlistService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	playlists, err := srv.playlistRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list playlists")
	}

	return playlists, nil
}

// AddVideo appends an existing video to the playlist.
func (srv *playlistService) AddVideo(ctx context.Context, input *usecase.PlaylistVideoInput) error {
	if _, err := srv.loadOwnedPlaylist(ctx, input.PlaylistID, input.OwnerID); err != nil {
		return err
	}

	exists, err := srv.videoRepo.Exists(ctx, input.VideoID)
	if err != nil {
		return errors.Wrap(err, "failed to check video existence")
	}
	if !exists {
		return errors.Wrap(domainerrors.ErrNotFound, "video not found")
	}

	if err := srv.playlistRepo.AddVideo(ctx, input.PlaylistID, input.VideoID); err != nil {
		if errors.Is(err, repository.ErrVideoAlreadyInPlaylist) {
			return errors.Wrap(domainerrors.ErrConflict, "video already in playlist")
		}

		return errors.Wrap(err, "failed to add video to playlist")
	}

	return nil
}

// RemoveVideo removes a video from the playlist.
func (srv *playlistService) RemoveVideo(ctx context.Context, input *usecase.PlaylistVideoInput) error {
	if _, err := srv.loadOwnedPlaylist(ctx, input.PlaylistID, input.OwnerID); err != nil {
		return err
	}

	if err := srv.playlistRepo.RemoveVideo(ctx, input.PlaylistID, input.VideoID); err != nil {
		if errors.Is(err, repository.ErrVideoNotInPlaylist) {
			return errors.Wrap(domainerrors.ErrNotFound, "video not in playlist")
		}

		return errors.Wrap(err, "failed to remove video from playlist")
	}

	return nil
}

// Update renames the playlist or changes its description.
func (srv *playlistService) Update(ctx context.Context, input *usecase.UpdatePlaylistInput) (*entity.Playlist, error) {
	playlist, err := srv.loadOwnedPlaylist(ctx, input.PlaylistID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		playlist.Name = name
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		playlist.Description = description
	}

	if err := srv.playlistRepo.Update(ctx, playlist); err != nil {
		if errors.Is(err, repository.ErrDuplicatePlaylist) {
			return nil, errors.Wrap(domainerrors.ErrConflict, "playlist name already in use")
		}

		return nil, errors.Wrap(err, "failed to update playlist")
	}

	return playlist, nil
}

// Delete removes the playlist. Videos themselves are untouched.
func (srv *playlistService) Delete(ctx context.Context, playlistID, ownerID uuid.UUID) error {
	if _, err := srv.loadOwnedPlaylist(ctx, playlistID, ownerID); err != nil {
		return err
	}

	if err := srv.playlistRepo.Delete(ctx, playlistID); err != nil {
		return errors.Wrap(err, "failed to delete playlist")
	}

	srv.log(ctx).Debug("Playlist deleted", slog.Any("playlistID", playlistID))

	return nil
}

func (srv *playlistService) loadOwnedPlaylist(ctx context.Context, playlistID, ownerID uuid.UUID) (*entity.Playlist, error) {
	playlist, err := srv.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		if errors.Is(err, repository.ErrPlaylistNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "playlist not found")
		}

		return nil, errors.Wrap(err, "failed to load playlist")
	}

	if playlist.OwnerID != ownerID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "caller does not own this playlist")
	}

	return playlist, nil
}
