package impl

import (
	"context"
	"sync"
	"testing"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type likeFixture struct {
	svc      usecase.LikeUsecase
	likeRepo *fakeLikeRepo
	videos   *fakeVideoRepo
	comments *fakeCommentRepo
	tweets   *fakeTweetRepo
}

func newLikeFixture(t *testing.T) *likeFixture {
	t.Helper()

	likeRepo := newFakeLikeRepo()
	videos := newFakeVideoRepo()
	comments := newFakeCommentRepo()
	tweets := newFakeTweetRepo()

	svc := NewLikeService(LikeServiceParams{
		LikeRepo:    likeRepo,
		VideoRepo:   videos,
		CommentRepo: comments,
		TweetRepo:   tweets,
		Logger:      discardLogger(),
	})

	return &likeFixture{
		svc:      svc,
		likeRepo: likeRepo,
		videos:   videos,
		comments: comments,
		tweets:   tweets,
	}
}

func (f *likeFixture) addVideo(t *testing.T) uuid.UUID {
	t.Helper()

	video := &entity.Video{OwnerID: uuid.New(), Title: "clip"}
	require.NoError(t, f.videos.Create(context.Background(), video))

	return video.ID
}

func TestLikeService_ToggleIsAnInvolution(t *testing.T) {
	f := newLikeFixture(t)
	videoID := f.addVideo(t)
	userID := uuid.New()

	input := &usecase.ToggleLikeInput{UserID: userID, TargetID: videoID, TargetKind: entity.LikeTargetVideo}

	on, err := f.svc.Toggle(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, on.Active)
	assert.Equal(t, int64(1), on.Count)

	off, err := f.svc.Toggle(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, off.Active)
	assert.Equal(t, int64(0), off.Count)

	// A second round trip lands in the same states.
	on, err = f.svc.Toggle(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, on.Active)
	assert.Equal(t, int64(1), on.Count)
}

func TestLikeService_ToggleRejectsUnknownKind(t *testing.T) {
	f := newLikeFixture(t)

	_, err := f.svc.Toggle(context.Background(), &usecase.ToggleLikeInput{
		UserID:     uuid.New(),
		TargetID:   uuid.New(),
		TargetKind: entity.LikeTarget("playlist"),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestLikeService_ToggleRejectsMissingTarget(t *testing.T) {
	f := newLikeFixture(t)

	for _, kind := range []entity.LikeTarget{entity.LikeTargetVideo, entity.LikeTargetComment, entity.LikeTargetTweet} {
		_, err := f.svc.Toggle(context.Background(), &usecase.ToggleLikeInput{
			UserID:     uuid.New(),
			TargetID:   uuid.New(),
			TargetKind: kind,
		})
		assert.ErrorIs(t, err, domainerrors.ErrTargetNotFound, "kind %s", kind)
	}
}

func TestLikeService_ToggleCommentAndTweetTargets(t *testing.T) {
	f := newLikeFixture(t)
	userID := uuid.New()

	comment := &entity.Comment{VideoID: uuid.New(), OwnerID: uuid.New(), Content: "nice"}
	require.NoError(t, f.comments.Create(context.Background(), comment))

	tweet := &entity.Tweet{OwnerID: uuid.New(), Content: "hello"}
	require.NoError(t, f.tweets.Create(context.Background(), tweet))

	out, err := f.svc.Toggle(context.Background(), &usecase.ToggleLikeInput{
		UserID: userID, TargetID: comment.ID, TargetKind: entity.LikeTargetComment,
	})
	require.NoError(t, err)
	assert.True(t, out.Active)

	out, err = f.svc.Toggle(context.Background(), &usecase.ToggleLikeInput{
		UserID: userID, TargetID: tweet.ID, TargetKind: entity.LikeTargetTweet,
	})
	require.NoError(t, err)
	assert.True(t, out.Active)

	// The two kinds are independent relations on independent targets.
	count, err := f.svc.Count(context.Background(), comment.ID, entity.LikeTargetComment)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeService_ConcurrentTogglesConverge(t *testing.T) {
	f := newLikeFixture(t)
	videoID := f.addVideo(t)
	userID := uuid.New()

	input := &usecase.ToggleLikeInput{UserID: userID, TargetID: videoID, TargetKind: entity.LikeTargetVideo}

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			_, err := f.svc.Toggle(context.Background(), input)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Whatever the interleaving, the store holds either zero rows or one;
	// duplicate-key creates and missing-row deletes never surface as errors.
	count, err := f.svc.Count(context.Background(), videoID, entity.LikeTargetVideo)
	require.NoError(t, err)
	assert.LessOrEqual(t, count, int64(1))

	liked, err := f.svc.IsLiked(context.Background(), userID, videoID, entity.LikeTargetVideo)
	require.NoError(t, err)
	assert.Equal(t, count == 1, liked)
}

func TestLikeService_IsLikedDistinguishesUsers(t *testing.T) {
	f := newLikeFixture(t)
	videoID := f.addVideo(t)
	alice, bob := uuid.New(), uuid.New()

	_, err := f.svc.Toggle(context.Background(), &usecase.ToggleLikeInput{
		UserID: alice, TargetID: videoID, TargetKind: entity.LikeTargetVideo,
	})
	require.NoError(t, err)

	liked, err := f.svc.IsLiked(context.Background(), alice, videoID, entity.LikeTargetVideo)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = f.svc.IsLiked(context.Background(), bob, videoID, entity.LikeTargetVideo)
	require.NoError(t, err)
	assert.False(t, liked)
}
