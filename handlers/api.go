// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/pollboard/middleware"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/service"
)

type PollHandler struct {
	polls *service.PollService
}

func NewPollHandler(polls *service.PollService) *PollHandler {
	return &PollHandler{polls: polls}
}

// parseID reads the {id} path value; ok is false when it is not an integer
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeServiceError maps service errors onto JSON error responses
func writeServiceError(w http.ResponseWriter, err error, notFound string) {
	if v, ok := service.IsValidation(err); ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, v.Message)
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
		return
	}
	slog.Error("storage failure", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
}

// ListPolls handles GET /api/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.polls.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, polls)
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.polls.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// GetPoll handles GET /api/polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	poll, err := h.polls.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// Vote handles POST /api/polls/{id}/vote
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	poll, err := h.polls.Vote(r.Context(), id, req.Option)
	if err != nil {
		writeServiceError(w, err, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

type GroupHandler struct {
	groups *service.GroupService
}

func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// ListGroups handles GET /api/groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, groups)
}

// CreateGroup handles POST /api/groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGroupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	group, err := h.groups.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, group)
}

// JoinGroup handles POST /api/groups/{id}/join
func (h *GroupHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		return
	}

	group, err := h.groups.Join(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Group not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, group)
}
