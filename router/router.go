// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/handlers"
	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/service"
)

func NewRouter(polls *service.PollService, groups *service.GroupService, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(polls, groups, cfg)
	pollHandler := handlers.NewPollHandler(polls)
	groupHandler := handlers.NewGroupHandler(groups)

	api := func(h http.HandlerFunc) http.Handler {
		return middleware.CORS(middleware.WithLogging(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll pages
	mux.HandleFunc("GET /polls", middleware.WithLogging(pageHandler.PollList))
	mux.HandleFunc("GET /polls/create", middleware.WithLogging(pageHandler.PollForm))
	mux.HandleFunc("POST /polls/create", middleware.WithLogging(pageHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pageHandler.PollDetail))
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(pageHandler.Vote))

	// Group pages
	mux.HandleFunc("GET /groups", middleware.WithLogging(pageHandler.GroupList))
	mux.HandleFunc("GET /groups/create", middleware.WithLogging(pageHandler.GroupForm))
	mux.HandleFunc("POST /groups/create", middleware.WithLogging(pageHandler.CreateGroup))
	mux.HandleFunc("POST /groups/{id}/join", middleware.WithLogging(pageHandler.JoinGroup))

	// JSON API
	mux.Handle("GET /api/polls", api(pollHandler.ListPolls))
	mux.Handle("POST /api/polls", api(pollHandler.CreatePoll))
	mux.Handle("GET /api/polls/{id}", api(pollHandler.GetPoll))
	mux.Handle("POST /api/polls/{id}/vote", api(pollHandler.Vote))
	mux.Handle("GET /api/groups", api(groupHandler.ListGroups))
	mux.Handle("POST /api/groups", api(groupHandler.CreateGroup))
	mux.Handle("POST /api/groups/{id}/join", api(groupHandler.JoinGroup))
	mux.Handle("OPTIONS /api/", middleware.CORS(http.NotFoundHandler()))

	// Root lands on the poll list
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/polls", http.StatusFound)
	})

	return mux
}
