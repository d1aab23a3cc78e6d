package impl

import (
	"context"
	"slices"
	"sync"
	"testing"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlaylistRepo struct {
	mu        sync.Mutex
	playlists map[uuid.UUID]*entity.Playlist
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{playlists: make(map[uuid.UUID]*entity.Playlist)}
}

func clonePlaylist(p *entity.Playlist) *entity.Playlist {
	clone := *p
	clone.VideoIDs = slices.Clone(p.VideoIDs)

	return &clone
}

func (r *fakePlaylistRepo) Create(_ context.Context, playlist *entity.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.playlists {
		if existing.OwnerID == playlist.OwnerID && existing.Name == playlist.Name {
			return repository.ErrDuplicatePlaylist
		}
	}

	playlist.ID = uuid.New()
	r.playlists[playlist.ID] = clonePlaylist(playlist)

	return nil
}

func (r *fakePlaylistRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, ok := r.playlists[id]
	if !ok {
		return nil, repository.ErrPlaylistNotFound
	}

	return clonePlaylist(playlist), nil
}

func (r *fakePlaylistRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Playlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlists := make([]*entity.Playlist, 0)
	for _, playlist := range r.playlists {
		if playlist.OwnerID == ownerID {
			playlists = append(playlists, clonePlaylist(playlist))
		}
	}

	return playlists, nil
}

func (r *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, ok := r.playlists[playlistID]
	if !ok {
		return repository.ErrPlaylistNotFound
	}
	if slices.Contains(playlist.VideoIDs, videoID) {
		return repository.ErrVideoAlreadyInPlaylist
	}
	playlist.VideoIDs = append(playlist.VideoIDs, videoID)

	return nil
}

func (r *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	playlist, ok := r.playlists[playlistID]
	if !ok {
		return repository.ErrPlaylistNotFound
	}
	index := slices.Index(playlist.VideoIDs, videoID)
	if index < 0 {
		return repository.ErrVideoNotInPlaylist
	}
	playlist.VideoIDs = slices.Delete(playlist.VideoIDs, index, index+1)

	return nil
}

func (r *fakePlaylistRepo) Update(_ context.Context, playlist *entity.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.playlists[playlist.ID]
	if !ok {
		return repository.ErrPlaylistNotFound
	}
	for id, other := range r.playlists {
		if id != playlist.ID && other.OwnerID == playlist.OwnerID && other.Name == playlist.Name {
			return repository.ErrDuplicatePlaylist
		}
	}
	stored.Name = playlist.Name
	stored.Description = playlist.Description

	return nil
}

func (r *fakePlaylistRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.playlists[id]; !ok {
		return repository.ErrPlaylistNotFound
	}
	delete(r.playlists, id)

	return nil
}

type playlistFixture struct {
	svc       usecase.PlaylistUsecase
	repo      *fakePlaylistRepo
	videoRepo *fakeVideoRepo
}

func newPlaylistFixture(t *testing.T) *playlistFixture {
	t.Helper()

	repo := newFakePlaylistRepo()
	videoRepo := newFakeVideoRepo()

	svc := NewPlaylistService(PlaylistServiceParams{
		PlaylistRepo: repo,
		VideoRepo:    videoRepo,
		Logger:       discardLogger(),
	})

	return &playlistFixture{svc: svc, repo: repo, videoRepo: videoRepo}
}

func (f *playlistFixture) addVideo(t *testing.T) uuid.UUID {
	t.Helper()

	video := &entity.Video{OwnerID: uuid.New(), Title: "clip"}
	require.NoError(t, f.videoRepo.Create(context.Background(), video))

	return video.ID
}

func TestPlaylistService_CreateAndGet(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := uuid.New()

	created, err := f.svc.Create(context.Background(), &usecase.CreatePlaylistInput{
		OwnerID:     owner,
		Name:        "  Favorites  ",
		Description: "best clips",
	})
	require.NoError(t, err)
	assert.Equal(t, "Favorites", created.Name)

	got, err := f.svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestPlaylistService_CreateRejectsDuplicateName(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := uuid.New()

	_, err := f.svc.Create(context.Background(), &usecase.CreatePlaylistInput{OwnerID: owner, Name: "Favorites"})
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), &usecase.CreatePlaylistInput{OwnerID: owner, Name: "Favorites"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	// Other owners can reuse the name.
	_, err = f.svc.Create(context.Background(), &usecase.CreatePlaylistInput{OwnerID: uuid.New(), Name: "Favorites"})
	assert.NoError(t, err)
}

func TestPlaylistService_MembershipKeepsOrder(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := uuid.New()

	playlist, err := f.svc.Create(context.Background(), &usecase.CreatePlaylistInput{OwnerID: owner, Name: "Queue"})
	require.NoError(t, err)

	first := f.addVideo(t)
	second := f.addVideo(t)
	for _, videoID := range []uuid.UUID{first, second} {
		require.NoError(t, f.svc.AddVideo(context.Background(), &usecase.PlaylistVideoInput{
			PlaylistID: playlist.ID,
			VideoID:    videoID,
			OwnerID:    owner,
		}))
	}

	got, err := f.svc.Get(context.Background(), playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, got.VideoIDs)

	// Duplicate membership is a conflict, not a second row.
	err = f.svc.AddVideo(context.Background(), &usecase.PlaylistVideoInput{
		PlaylistID: playlist.ID,
		VideoID:    first,
		OwnerID:    owner,
	})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	require.NoError(t, f.svc.RemoveVideo(context.Background(), &usecase.PlaylistVideoInput{
		PlaylistID: playlist.ID,
		VideoID:    first,
		OwnerID:    owner,
	}))

	got, err = f.svc.Get(context.Background(), playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second}, got.VideoIDs)
}

func TestPlaylistService_MembershipValidation(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := uuid.New()

	playlist, err := f.svc.Create(context.Background(), &usecase.CreatePlaylistInput{OwnerID: owner, Name: "Queue"})
	require.NoError(t, err)

	// Unknown video.
	err = f.svc.AddVideo(context.Background(), &usecase.PlaylistVideoInput{
		PlaylistID: playlist.ID,
		VideoID:    uuid.New(),
		OwnerID:    owner,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Not the owner.
	err = f.svc.AddVideo(context.Background(), &usecase.PlaylistVideoInput{
		PlaylistID: playlist.ID,
		VideoID:    f.addVideo(t),
		OwnerID:    uuid.New(),
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Removing a video that is not a member.
	err = f.svc.RemoveVideo(context.Background(), &usecase.PlaylistVideoInput{
		PlaylistID: playlist.ID,
		VideoID:    f.addVideo(t),
		OwnerID:    owner,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPlaylistService_DeleteEnforcesOwnership(t *testing.T) {
	f := newPlaylistFixture(t)
	owner := uuid.New()

	playlist, err := f.svc.Create(context.Background(), &usecase.CreatePlaylistInput{OwnerID: owner, Name: "Queue"})
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), playlist.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, f.svc.Delete(context.Background(), playlist.ID, owner))

	_, err = f.svc.Get(context.Background(), playlist.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
