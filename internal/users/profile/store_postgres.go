// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package profile

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/haiphamduc/streamora/internal/platform/dberr"
)

// # Profile Repository (PostgreSQL)

// PostgresProfileRepository implements [ProfileRepository] using pgx.
//
// All aggregation happens inside Postgres; this type only hydrates rows.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new PostgreSQL implementation of the [ProfileRepository].
func NewProfileRepository(pool *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{pool: pool}
}

/*
ChannelProfile joins the account row with its subscription statistics.

Description: Counts subscribers of the channel and the channels it subscribes
to, plus an EXISTS probe for the viewer's own subscription. A missing channel
surfaces as apperr.NotFound via the no-rows mapping.

Parameters:
  - context: context.Context
  - username: string
  - viewerID: string

Returns:
  - *ChannelProfile: Hydrated view
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresProfileRepository) ChannelProfile(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	const query = `
		SELECT
			a.id, a.username, a.fullname, a.email, a.avatarurl, a.coverimageurl, a.createdat,
			(SELECT COUNT(*) FROM users.subscription s WHERE s.channelid = a.id)    AS subscribers,
			(SELECT COUNT(*) FROM users.subscription s WHERE s.subscriberid = a.id) AS subscribedto,
			EXISTS (
				SELECT 1 FROM users.subscription s
				WHERE s.channelid = a.id AND s.subscriberid = $2
			) AS issubscribed
		FROM users.account a
		WHERE lower(a.username) = lower($1)`

	channel := &ChannelProfile{}
	err := repository.pool.QueryRow(context, query, username, viewerID).Scan(
		&channel.ID,
		&channel.Username,
		&channel.FullName,
		&channel.Email,
		&channel.AvatarURL,
		&channel.CoverImageURL,
		&channel.CreatedAt,
		&channel.SubscriberCount,
		&channel.SubscribedToCount,
		&channel.IsSubscribed,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Channel")
	}

	return channel, nil
}

/*
WatchHistory joins history rows with their videos and video owners.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []WatchHistoryEntry: Newest-first history (possibly empty)
  - error: Database errors
*/
func (repository *PostgresProfileRepository) WatchHistory(context context.Context, userID string) ([]WatchHistoryEntry, error) {
	const query = `
		SELECT
			v.id, v.title, v.description, v.thumbnailurl, v.durationseconds, v.viewcount,
			o.id, o.username, o.fullname, o.avatarurl,
			h.watchedat
		FROM users.watchhistory h
		JOIN core.video v     ON v.id = h.videoid
		JOIN users.account o  ON o.id = v.ownerid
		WHERE h.userid = $1
		ORDER BY h.watchedat DESC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "Watch history")
	}
	defer rows.Close()

	// Empty history is a valid result; never conflate it with NotFound.
	entries := make([]WatchHistoryEntry, 0)
	for rows.Next() {
		var entry WatchHistoryEntry
		if err := rows.Scan(
			&entry.VideoID,
			&entry.Title,
			&entry.Description,
			&entry.ThumbnailURL,
			&entry.DurationSeconds,
			&entry.ViewCount,
			&entry.Owner.ID,
			&entry.Owner.Username,
			&entry.Owner.FullName,
			&entry.Owner.AvatarURL,
			&entry.WatchedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "Watch history")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Watch history")
	}

	return entries, nil
}
