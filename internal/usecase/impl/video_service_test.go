package impl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMediaStorage records uploads and serves deterministic URLs.
type fakeMediaStorage struct {
	mu      sync.Mutex
	uploads map[string]string
	fail    bool
}

func newFakeMediaStorage() *fakeMediaStorage {
	return &fakeMediaStorage{uploads: make(map[string]string)}
}

func (s *fakeMediaStorage) Upload(_ context.Context, key, contentType string, content io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail {
		return "", errors.New("storage unavailable")
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.uploads[key] = string(data)

	return "https://media.test/" + key, nil
}

func (s *fakeMediaStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.uploads, key)

	return nil
}

type videoFixture struct {
	svc       usecase.VideoUsecase
	videoRepo *fakeVideoRepo
	userRepo  *fakeUserRepo
	storage   *fakeMediaStorage
}

func newVideoFixture(t *testing.T) *videoFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	videoRepo := newFakeVideoRepo()
	userRepo.videos = videoRepo
	videoRepo.users = userRepo
	storage := newFakeMediaStorage()

	svc := NewVideoService(VideoServiceParams{
		VideoRepo: videoRepo,
		UserRepo:  userRepo,
		Storage:   storage,
		Logger:    discardLogger(),
	})

	return &videoFixture{svc: svc, videoRepo: videoRepo, userRepo: userRepo, storage: storage}
}

func (f *videoFixture) addUser(t *testing.T, username string) uuid.UUID {
	t.Helper()

	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		Fullname:     username,
		PasswordHash: "x",
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return user.ID
}

func mediaUpload(name, content string) *usecase.MediaFile {
	return &usecase.MediaFile{
		Content:     strings.NewReader(content),
		Filename:    name,
		ContentType: "video/mp4",
	}
}

func TestVideoService_Publish(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")

	video, err := f.svc.Publish(context.Background(), &usecase.PublishVideoInput{
		OwnerID:   owner,
		Title:     "  My Clip  ",
		Video:     mediaUpload("clip.mp4", "frames"),
		Thumbnail: mediaUpload("thumb.png", "pixels"),
		Duration:  12.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "My Clip", video.Title)
	assert.True(t, video.IsPublished)
	assert.Contains(t, video.VideoURL, "videos/"+owner.String())
	assert.Contains(t, video.ThumbnailURL, "thumbnails/"+owner.String())
	assert.Len(t, f.storage.uploads, 2)
}

func TestVideoService_PublishValidation(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")

	_, err := f.svc.Publish(context.Background(), &usecase.PublishVideoInput{
		OwnerID: owner,
		Title:   "   ",
		Video:   mediaUpload("clip.mp4", "frames"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = f.svc.Publish(context.Background(), &usecase.PublishVideoInput{
		OwnerID: owner,
		Title:   "ok",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestVideoService_PublishStorageFailure(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")
	f.storage.fail = true

	_, err := f.svc.Publish(context.Background(), &usecase.PublishVideoInput{
		OwnerID: owner,
		Title:   "clip",
		Video:   mediaUpload("clip.mp4", "frames"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrMediaUploadFailed)
}

func TestVideoService_GetAnonymousLeavesNoTrace(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")

	video := &entity.Video{OwnerID: owner, Title: "clip"}
	require.NoError(t, f.videoRepo.Create(context.Background(), video))

	got, err := f.svc.Get(context.Background(), video.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Views)
	assert.Equal(t, "creator", got.Owner.Username)
	assert.Empty(t, f.userRepo.history)
}

func TestVideoService_GetAuthenticatedCountsView(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")
	viewer := f.addUser(t, "viewer")

	video := &entity.Video{OwnerID: owner, Title: "clip"}
	require.NoError(t, f.videoRepo.Create(context.Background(), video))

	got, err := f.svc.Get(context.Background(), video.ID, &viewer)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	entries, err := f.userRepo.ListWatchHistory(context.Background(), viewer)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, video.ID, entries[0].Video.ID)
}

func TestVideoService_GetUnknownVideo(t *testing.T) {
	f := newVideoFixture(t)

	_, err := f.svc.Get(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVideoService_ListPagination(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")

	for i := range 25 {
		video := &entity.Video{OwnerID: owner, Title: fmt.Sprintf("clip-%02d", i)}
		require.NoError(t, f.videoRepo.Create(context.Background(), video))
	}

	page, err := f.svc.List(context.Background(), &usecase.ListVideosInput{
		OwnerID: owner,
		Page:    repository.PageRequest{Page: 3, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.PageSize)

	// Past the end: empty items, accurate total.
	page, err = f.svc.List(context.Background(), &usecase.ListVideosInput{
		OwnerID: owner,
		Page:    repository.PageRequest{Page: 9, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(25), page.Total)

	// Degenerate values fall back to defaults.
	page, err = f.svc.List(context.Background(), &usecase.ListVideosInput{
		OwnerID: owner,
		Page:    repository.PageRequest{Page: -1, PageSize: 0},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.Page)
}

func TestVideoService_ListUnknownOwner(t *testing.T) {
	f := newVideoFixture(t)

	_, err := f.svc.List(context.Background(), &usecase.ListVideosInput{
		OwnerID: uuid.New(),
		Page:    repository.PageRequest{},
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestVideoService_ListSortKeyWhitelist(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")

	video := &entity.Video{OwnerID: owner, Title: "clip"}
	require.NoError(t, f.videoRepo.Create(context.Background(), video))

	for _, sortBy := range []string{"createdAt", "title", "views", "duration", ""} {
		_, err := f.svc.List(context.Background(), &usecase.ListVideosInput{
			OwnerID: owner,
			Page:    repository.PageRequest{SortBy: sortBy},
		})
		assert.NoError(t, err, "sortBy=%q", sortBy)
	}

	_, err := f.svc.List(context.Background(), &usecase.ListVideosInput{
		OwnerID: owner,
		Page:    repository.PageRequest{SortBy: "likes"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestVideoService_UpdateEnforcesOwnership(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")
	stranger := f.addUser(t, "stranger")

	video := &entity.Video{OwnerID: owner, Title: "clip"}
	require.NoError(t, f.videoRepo.Create(context.Background(), video))

	_, err := f.svc.Update(context.Background(), &usecase.UpdateVideoInput{
		VideoID: video.ID,
		OwnerID: stranger,
		Title:   "hijacked",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := f.svc.Update(context.Background(), &usecase.UpdateVideoInput{
		VideoID: video.ID,
		OwnerID: owner,
		Title:   "renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
}

func TestVideoService_DeleteEnforcesOwnership(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")
	stranger := f.addUser(t, "stranger")

	video := &entity.Video{OwnerID: owner, Title: "clip"}
	require.NoError(t, f.videoRepo.Create(context.Background(), video))

	err := f.svc.Delete(context.Background(), video.ID, stranger)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, f.svc.Delete(context.Background(), video.ID, owner))

	_, err = f.svc.Get(context.Background(), video.ID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestVideoService_TogglePublish(t *testing.T) {
	f := newVideoFixture(t)
	owner := f.addUser(t, "creator")

	video := &entity.Video{OwnerID: owner, Title: "clip", IsPublished: true}
	require.NoError(t, f.videoRepo.Create(context.Background(), video))

	published, err := f.svc.TogglePublish(context.Background(), video.ID, owner)
	require.NoError(t, err)
	assert.False(t, published)

	published, err = f.svc.TogglePublish(context.Background(), video.ID, owner)
	require.NoError(t, err)
	assert.True(t, published)
}
