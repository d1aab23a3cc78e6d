package impl

import (
	"context"
	"fmt"
	"testing"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	svc       usecase.CommentUsecase
	repo      *fakeCommentRepo
	videoRepo *fakeVideoRepo
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()

	repo := newFakeCommentRepo()
	videoRepo := newFakeVideoRepo()

	svc := NewCommentService(CommentServiceParams{
		CommentRepo: repo,
		VideoRepo:   videoRepo,
		Logger:      discardLogger(),
	})

	return &commentFixture{svc: svc, repo: repo, videoRepo: videoRepo}
}

func (f *commentFixture) addVideo(t *testing.T) uuid.UUID {
	t.Helper()

	video := &entity.Video{OwnerID: uuid.New(), Title: "clip"}
	require.NoError(t, f.videoRepo.Create(context.Background(), video))

	return video.ID
}

func TestCommentService_AddRequiresExistingVideo(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Add(context.Background(), &usecase.AddCommentInput{
		VideoID: uuid.New(),
		OwnerID: uuid.New(),
		Content: "hello",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCommentService_AddRejectsEmptyContent(t *testing.T) {
	f := newCommentFixture(t)
	videoID := f.addVideo(t)

	_, err := f.svc.Add(context.Background(), &usecase.AddCommentInput{
		VideoID: videoID,
		OwnerID: uuid.New(),
		Content: "   ",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCommentService_ListPagination(t *testing.T) {
	f := newCommentFixture(t)
	videoID := f.addVideo(t)
	author := uuid.New()

	for i := range 12 {
		_, err := f.svc.Add(context.Background(), &usecase.AddCommentInput{
			VideoID: videoID,
			OwnerID: author,
			Content: fmt.Sprintf("comment %d", i),
		})
		require.NoError(t, err)
	}

	page, err := f.svc.List(context.Background(), &usecase.ListCommentsInput{
		VideoID: videoID,
		Page:    repository.PageRequest{Page: 2, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(12), page.Total)
}

func TestCommentService_ListSortKeyWhitelist(t *testing.T) {
	f := newCommentFixture(t)
	videoID := f.addVideo(t)

	_, err := f.svc.List(context.Background(), &usecase.ListCommentsInput{
		VideoID: videoID,
		Page:    repository.PageRequest{SortBy: "createdAt"},
	})
	assert.NoError(t, err)

	_, err = f.svc.List(context.Background(), &usecase.ListCommentsInput{
		VideoID: videoID,
		Page:    repository.PageRequest{SortBy: "content"},
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCommentService_UpdateAndDeleteEnforceOwnership(t *testing.T) {
	f := newCommentFixture(t)
	videoID := f.addVideo(t)
	author := uuid.New()
	stranger := uuid.New()

	comment, err := f.svc.Add(context.Background(), &usecase.AddCommentInput{
		VideoID: videoID,
		OwnerID: author,
		Content: "original",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), &usecase.UpdateCommentInput{
		CommentID: comment.ID,
		OwnerID:   stranger,
		Content:   "hijacked",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := f.svc.Update(context.Background(), &usecase.UpdateCommentInput{
		CommentID: comment.ID,
		OwnerID:   author,
		Content:   "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	err = f.svc.Delete(context.Background(), comment.ID, stranger)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, f.svc.Delete(context.Background(), comment.ID, author))

	_, err = f.svc.Update(context.Background(), &usecase.UpdateCommentInput{
		CommentID: comment.ID,
		OwnerID:   author,
		Content:   "gone",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
