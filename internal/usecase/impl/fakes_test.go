package impl

import (
	"context"
	"sync"
	"time"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes. They enforce the same uniqueness and
// not-found semantics as the postgres implementations, guarded by a mutex
// so concurrency tests exercise real interleavings.

type watchRow struct {
	userID    uuid.UUID
	videoID   uuid.UUID
	watchedAt time.Time
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*entity.User
	history []watchRow
	videos  *fakeVideoRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == username {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == login || user.Email == login {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.users[id]

	return ok, nil
}

func (r *fakeUserRepo) SetRefreshTokenHash(_ context.Context, userID uuid.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.RefreshTokenHash = hash

	return nil
}

func (r *fakeUserRepo) RotateRefreshTokenHash(_ context.Context, userID uuid.UUID, oldHash, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok || user.RefreshTokenHash != oldHash {
		return repository.ErrRefreshTokenMismatch
	}
	user.RefreshTokenHash = newHash

	return nil
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, userID uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.PasswordHash = passwordHash

	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	stored.Fullname = user.Fullname
	stored.AvatarURL = user.AvatarURL
	stored.CoverImageURL = user.CoverImageURL

	return nil
}

func (r *fakeUserRepo) AppendWatchHistory(_ context.Context, userID, videoID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.history = append(r.history, watchRow{userID: userID, videoID: videoID, watchedAt: time.Now()})

	return nil
}

func (r *fakeUserRepo) ListWatchHistory(_ context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error) {
	r.mu.Lock()
	rows := make([]watchRow, len(r.history))
	copy(rows, r.history)
	r.mu.Unlock()

	entries := make([]*entity.WatchEntry, 0)
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if row.userID != userID {
			continue
		}

		r.videos.mu.Lock()
		video := r.videos.get(row.videoID)
		r.videos.mu.Unlock()
		if video == nil {
			continue
		}

		var owner *entity.PublicUser
		r.mu.Lock()
		if ownerUser, ok := r.users[video.OwnerID]; ok {
			owner = ownerUser.Public()
		}
		r.mu.Unlock()

		entries = append(entries, &entity.WatchEntry{
			Video:     video,
			Owner:     owner,
			WatchedAt: row.watchedAt,
		})
	}

	return entries, nil
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*entity.Video
	order  []uuid.UUID
	users  *fakeUserRepo
	likes  *fakeLikeRepo
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[uuid.UUID]*entity.Video)}
}

func (r *fakeVideoRepo) get(id uuid.UUID) *entity.Video {
	video, ok := r.videos[id]
	if !ok {
		return nil
	}
	clone := *video

	return &clone
}

func (r *fakeVideoRepo) Create(_ context.Context, video *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	video.ID = uuid.New()
	video.CreatedAt = time.Now()
	clone := *video
	r.videos[video.ID] = &clone
	r.order = append(r.order, video.ID)

	return nil
}

func (r *fakeVideoRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.get(id)
	if video == nil {
		return nil, repository.ErrVideoNotFound
	}

	return video, nil
}

func (r *fakeVideoRepo) FindByIDWithOwner(_ context.Context, id uuid.UUID) (*entity.VideoWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	video := r.get(id)
	if video == nil {
		return nil, repository.ErrVideoNotFound
	}

	var owner *entity.PublicUser
	if r.users != nil {
		r.users.mu.Lock()
		if ownerUser, ok := r.users.users[video.OwnerID]; ok {
			owner = ownerUser.Public()
		}
		r.users.mu.Unlock()
	}

	return &entity.VideoWithOwner{Video: *video, Owner: owner}, nil
}

func (r *fakeVideoRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.videos[id]

	return ok, nil
}

func (r *fakeVideoRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, page repository.PageRequest) (*repository.Page[*entity.Video], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	page = page.Normalize()

	// Newest first, matching the default sort of the real store.
	owned := make([]*entity.Video, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if video := r.videos[r.order[i]]; video.OwnerID == ownerID {
			clone := *video
			owned = append(owned, &clone)
		}
	}

	total := int64(len(owned))
	start := page.Offset()
	if start > len(owned) {
		start = len(owned)
	}
	end := start + page.PageSize
	if end > len(owned) {
		end = len(owned)
	}

	return &repository.Page[*entity.Video]{
		Items:    owned[start:end],
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, video *entity.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.videos[video.ID]; !ok {
		return repository.ErrVideoNotFound
	}
	clone := *video
	r.videos[video.ID] = &clone

	return nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.videos[id]; !ok {
		return repository.ErrVideoNotFound
	}
	delete(r.videos, id)

	return nil
}

func (r *fakeVideoRepo) IncrementViews(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	video, ok := r.videos[id]
	if !ok {
		return repository.ErrVideoNotFound
	}
	video.Views++

	return nil
}

func (r *fakeVideoRepo) TogglePublished(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	video, ok := r.videos[id]
	if !ok {
		return false, repository.ErrVideoNotFound
	}
	video.IsPublished = !video.IsPublished

	return video.IsPublished, nil
}

func (r *fakeVideoRepo) FindLikedBy(_ context.Context, userID uuid.UUID) ([]*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.likes == nil {
		return nil, nil
	}

	keys := r.likes.likedBy(userID, entity.LikeTargetVideo)
	videos := make([]*entity.Video, 0, len(keys))
	for _, videoID := range keys {
		if video := r.get(videoID); video != nil {
			videos = append(videos, video)
		}
	}

	return videos, nil
}

type likeKey struct {
	userID   uuid.UUID
	targetID uuid.UUID
	kind     entity.LikeTarget
}

type fakeLikeRepo struct {
	mu      sync.Mutex
	rows    map[likeKey]*entity.Like
	order   []likeKey
	creates int
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{rows: make(map[likeKey]*entity.Like)}
}

func (r *fakeLikeRepo) Create(_ context.Context, like *entity.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := likeKey{userID: like.UserID, targetID: like.TargetID, kind: like.TargetKind}
	if _, ok := r.rows[key]; ok {
		return repository.ErrDuplicateLike
	}

	like.ID = uuid.New()
	like.CreatedAt = time.Now()
	clone := *like
	r.rows[key] = &clone
	r.order = append(r.order, key)
	r.creates++

	return nil
}

func (r *fakeLikeRepo) Delete(_ context.Context, userID, targetID uuid.UUID, kind entity.LikeTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := likeKey{userID: userID, targetID: targetID, kind: kind}
	if _, ok := r.rows[key]; !ok {
		return repository.ErrLikeNotFound
	}
	delete(r.rows, key)

	return nil
}

func (r *fakeLikeRepo) Exists(_ context.Context, userID, targetID uuid.UUID, kind entity.LikeTarget) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.rows[likeKey{userID: userID, targetID: targetID, kind: kind}]

	return ok, nil
}

func (r *fakeLikeRepo) CountByTarget(_ context.Context, targetID uuid.UUID, kind entity.LikeTarget) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for key := range r.rows {
		if key.targetID == targetID && key.kind == kind {
			count++
		}
	}

	return count, nil
}

// likedBy returns the user's liked target ids, most recently liked first.
func (r *fakeLikeRepo) likedBy(userID uuid.UUID, kind entity.LikeTarget) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uuid.UUID, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		key := r.order[i]
		if key.userID != userID || key.kind != kind {
			continue
		}
		if _, ok := r.rows[key]; ok {
			ids = append(ids, key.targetID)
		}
	}

	return ids
}

type subKey struct {
	subscriberID uuid.UUID
	channelID    uuid.UUID
}

type fakeSubscriptionRepo struct {
	mu    sync.Mutex
	rows  map[subKey]*entity.Subscription
	users *fakeUserRepo
}

func newFakeSubscriptionRepo(users *fakeUserRepo) *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{rows: make(map[subKey]*entity.Subscription), users: users}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := subKey{subscriberID: sub.SubscriberID, channelID: sub.ChannelID}
	if _, ok := r.rows[key]; ok {
		return repository.ErrDuplicateSubscription
	}

	sub.ID = uuid.New()
	sub.CreatedAt = time.Now()
	clone := *sub
	r.rows[key] = &clone

	return nil
}

func (r *fakeSubscriptionRepo) Delete(_ context.Context, subscriberID, channelID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := subKey{subscriberID: subscriberID, channelID: channelID}
	if _, ok := r.rows[key]; !ok {
		return repository.ErrSubscriptionNotFound
	}
	delete(r.rows, key)

	return nil
}

func (r *fakeSubscriptionRepo) Exists(_ context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.rows[subKey{subscriberID: subscriberID, channelID: channelID}]

	return ok, nil
}

func (r *fakeSubscriptionRepo) CountByChannel(_ context.Context, channelID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for key := range r.rows {
		if key.channelID == channelID {
			count++
		}
	}

	return count, nil
}

func (r *fakeSubscriptionRepo) CountBySubscriber(_ context.Context, subscriberID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for key := range r.rows {
		if key.subscriberID == subscriberID {
			count++
		}
	}

	return count, nil
}

func (r *fakeSubscriptionRepo) ListSubscribers(_ context.Context, channelID uuid.UUID) ([]*entity.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subscribers := make([]*entity.PublicUser, 0)
	for key := range r.rows {
		if key.channelID != channelID {
			continue
		}
		if user, err := r.users.FindByID(context.Background(), key.subscriberID); err == nil {
			subscribers = append(subscribers, user.Public())
		}
	}

	return subscribers, nil
}

func (r *fakeSubscriptionRepo) ListChannels(_ context.Context, subscriberID uuid.UUID) ([]*entity.PublicUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	channels := make([]*entity.PublicUser, 0)
	for key := range r.rows {
		if key.subscriberID != subscriberID {
			continue
		}
		if user, err := r.users.FindByID(context.Background(), key.channelID); err == nil {
			channels = append(channels, user.Public())
		}
	}

	return channels, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*entity.Comment
	order    []uuid.UUID
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*entity.Comment)}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	clone := *comment
	r.comments[comment.ID] = &clone
	r.order = append(r.order, comment.ID)

	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}
	clone := *comment

	return &clone, nil
}

func (r *fakeCommentRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.comments[id]

	return ok, nil
}

func (r *fakeCommentRepo) ListByVideo(_ context.Context, videoID uuid.UUID, page repository.PageRequest) (*repository.Page[*entity.Comment], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	page = page.Normalize()

	matched := make([]*entity.Comment, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if comment, ok := r.comments[r.order[i]]; ok && comment.VideoID == videoID {
			clone := *comment
			matched = append(matched, &clone)
		}
	}

	total := int64(len(matched))
	start := page.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + page.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &repository.Page[*entity.Comment]{
		Items:    matched[start:end],
		Total:    total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[comment.ID]; !ok {
		return repository.ErrCommentNotFound
	}
	clone := *comment
	r.comments[comment.ID] = &clone

	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(r.comments, id)

	return nil
}

type fakeTweetRepo struct {
	mu     sync.Mutex
	tweets map[uuid.UUID]*entity.Tweet
	order  []uuid.UUID
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: make(map[uuid.UUID]*entity.Tweet)}
}

func (r *fakeTweetRepo) Create(_ context.Context, tweet *entity.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tweet.ID = uuid.New()
	tweet.CreatedAt = time.Now()
	clone := *tweet
	r.tweets[tweet.ID] = &clone
	r.order = append(r.order, tweet.ID)

	return nil
}

func (r *fakeTweetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tweet, ok := r.tweets[id]
	if !ok {
		return nil, repository.ErrTweetNotFound
	}
	clone := *tweet

	return &clone, nil
}

func (r *fakeTweetRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.tweets[id]

	return ok, nil
}

func (r *fakeTweetRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tweets := make([]*entity.Tweet, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if tweet, ok := r.tweets[r.order[i]]; ok && tweet.OwnerID == ownerID {
			clone := *tweet
			tweets = append(tweets, &clone)
		}
	}

	return tweets, nil
}

func (r *fakeTweetRepo) Update(_ context.Context, tweet *entity.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tweets[tweet.ID]; !ok {
		return repository.ErrTweetNotFound
	}
	clone := *tweet
	r.tweets[tweet.ID] = &clone

	return nil
}

func (r *fakeTweetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tweets[id]; !ok {
		return repository.ErrTweetNotFound
	}
	delete(r.tweets, id)

	return nil
}
