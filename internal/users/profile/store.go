// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package profile

import "context"

// # Read Model Contracts

// ProfileRepository defines the read-only social-graph query contract.
type ProfileRepository interface {

	/*
		ChannelProfile returns the channel view for username as seen by viewerID.

		Parameters:
		  - context: context.Context
		  - username: string (Channel handle, matched case-insensitively)
		  - viewerID: string (The authenticated viewer)

		Returns:
		  - *ChannelProfile: Denormalized channel statistics
		  - error: apperr.NotFound when no such channel, or database errors
	*/
	ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error)

	/*
		WatchHistory returns the viewer's watched videos, newest first.

		An account with no history yields an empty slice, not an error.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []WatchHistoryEntry: Ordered history with owner projections
		  - error: Database errors
	*/
	WatchHistory(context context.Context, userID string) ([]WatchHistoryEntry, error)
}
