// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package profile

import (
	"context"
	"strings"

	"github.com/haiphamduc/streamora/internal/platform/apperr"
)

// # Service Layer

// Service exposes the read-only profile queries to the delivery layer.
type Service struct {
	profiles ProfileRepository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(profiles ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

/*
GetChannelProfile returns the channel view for a handle as seen by the viewer.

Parameters:
  - context: context.Context
  - username: string (Channel handle from the URL)
  - viewerID: string (The authenticated viewer)

Returns:
  - *ChannelProfile: Denormalized channel statistics
  - error: apperr.NotFound for unknown channels, or database errors
*/
func (service *Service) GetChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.NotFound("Channel")
	}

	return service.profiles.ChannelProfile(context, username, viewerID)
}

/*
GetWatchHistory returns the viewer's watch history, newest first.

Description: The viewer is an authenticated, existing account, so an empty
history is a legitimate empty list rather than a NotFound.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []WatchHistoryEntry: Ordered history (possibly empty, never nil)
  - error: Database errors
*/
func (service *Service) GetWatchHistory(context context.Context, userID string) ([]WatchHistoryEntry, error) {
	entries, err := service.profiles.WatchHistory(context, userID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = make([]WatchHistoryEntry, 0)
	}

	return entries, nil
}
