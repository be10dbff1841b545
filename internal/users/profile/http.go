// Copyright (c) 2026 Streamora. All rights reserved.
// Author: hai.phamduc.vn@gmail.com

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haiphamduc/streamora/internal/platform/middleware"
	requestutil "github.com/haiphamduc/streamora/internal/platform/request"
	"github.com/haiphamduc/streamora/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the social-graph read HTTP endpoints.
type Handler struct {
	profileService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{profileService: service}
}

// Mount attaches the profile read routes to the users router.
//
// # Endpoints (all authenticated)
//   - GET /channel/{username}  : Channel profile with subscriber statistics.
//   - GET /get-watch-history   : The viewer's watch history.
func (handler *Handler) Mount(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/channel/{username}", handler.channelProfile)
		r.Get("/get-watch-history", handler.watchHistory)
	})
}

// # Handlers

/*
ChannelProfile returns a channel's public view with subscription statistics.

GET /api/v1/users/channel/{username}

Response:
  - 200: ChannelProfile
  - 401: Not authenticated
  - 404: Unknown channel handle
*/
func (handler *Handler) channelProfile(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	channel, err := handler.profileService.GetChannelProfile(
		request.Context(),
		requestutil.Param(request, "username"),
		viewerID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, channel, "Channel profile fetched successfully")
}

/*
WatchHistory returns the authenticated viewer's watched videos, newest first.

GET /api/v1/users/get-watch-history

Response:
  - 200: []WatchHistoryEntry (empty list when nothing was watched)
  - 401: Not authenticated
*/
func (handler *Handler) watchHistory(writer http.ResponseWriter, request *http.Request) {
	viewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.profileService.GetWatchHistory(request.Context(), viewerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries, "Watch history fetched successfully")
}
