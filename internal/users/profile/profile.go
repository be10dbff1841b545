// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

/*
Package profile implements the read-only social-graph queries.

It produces denormalized view objects over the relationship data owned by the
wider platform: channel profiles with subscriber statistics and the viewer's
watch history with nested video owner projections.

# Architecture

  - Read-only: nothing in this package mutates state; the subscription and
    watch-history write paths belong to other Streamora services.
  - Delegated joins: the aggregations are plain SQL executed by Postgres, not
    in-process merging.
*/
package profile

import "time"

// # View Objects

// ChannelProfile is the public channel view with subscriber statistics.
//
// IsSubscribed reflects the VIEWER's relationship with the channel, so the
// same channel renders differently per authenticated caller.
type ChannelProfile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	FullName          string    `json:"fullname"`
	Email             string    `json:"email"`
	AvatarURL         string    `json:"avatar"`
	CoverImageURL     string    `json:"coverImage,omitempty"`
	SubscriberCount   int64     `json:"subscribersCount"`
	SubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
	CreatedAt         time.Time `json:"createdAt"`
}

// VideoOwner is the sanitized owner projection nested in history entries.
type VideoOwner struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullname"`
	AvatarURL string `json:"avatar"`
}

// WatchHistoryEntry is one watched video with its owner, newest first.
type WatchHistoryEntry struct {
	VideoID         string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	ThumbnailURL    string     `json:"thumbnail"`
	DurationSeconds int32      `json:"duration"`
	ViewCount       int64      `json:"views"`
	Owner           VideoOwner `json:"owner"`
	WatchedAt       time.Time  `json:"watchedAt"`
}
