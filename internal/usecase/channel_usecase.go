package usecase

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// ChannelUsecase defines the aggregated read paths over channels: profile
// pages with derived counts, watch history, and liked videos.
type ChannelUsecase interface {
	// GetProfile returns the channel's public profile with subscriber
	// counts. When viewerID is non-nil, IsSubscribed reflects whether the
	// viewer follows the channel; anonymous viewers always get false.
	GetProfile(ctx context.Context, username string, viewerID *uuid.UUID) (*entity.ChannelProfile, error)

	// WatchHistory returns the caller's watch history, most recent first,
	// each entry joined with the video and its owner's public fields.
	WatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error)

	// LikedVideos returns the videos the caller has liked, most recently
	// liked first.
	LikedVideos(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error)
}
