// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/service"
	"github.com/danielhkuo/pollboard/views"
)

// Notices shown after a successful submission
const (
	MsgPollCreated  = "Poll created successfully!"
	MsgGroupCreated = "Group created successfully!"
	MsgVoteRecorded = "Your vote has been recorded!"
)

var (
	pollNotFound = views.NotFoundPage{
		Heading: "Poll Not Found",
		Message: "The poll you are looking for does not exist.",
	}
	groupNotFound = views.NotFoundPage{
		Heading: "Group Not Found",
		Message: "The group you are looking for does not exist.",
	}
)

// PageHandler serves the HTML list, create and vote pages
type PageHandler struct {
	polls  *service.PollService
	groups *service.GroupService
	cfg    cliparse.Config
}

func NewPageHandler(polls *service.PollService, groups *service.GroupService, cfg cliparse.Config) *PageHandler {
	return &PageHandler{polls: polls, groups: groups, cfg: cfg}
}

func storageError(w http.ResponseWriter, err error) {
	slog.Error("storage failure", "error", err)
	http.Error(w, "Storage error", http.StatusInternalServerError)
}

// PollList handles GET /polls
func (h *PageHandler) PollList(w http.ResponseWriter, r *http.Request) {
	notice := popNotice(w, r, h.cfg.FlashSecret)

	polls, err := h.polls.List(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	views.Render(w, http.StatusOK, views.PollList, views.PollListPage{Notice: notice, Polls: polls})
}

// PollForm handles GET /polls/create
func (h *PageHandler) PollForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, views.PollForm, views.PollFormPage{
		Notice:  popNotice(w, r, h.cfg.FlashSecret),
		Options: []string{""},
	})
}

// CreatePoll handles POST /polls/create. The action field adds or removes
// an option row, anything else submits the poll.
func (h *PageHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := views.PollFormPage{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Options:     r.PostForm["option"],
	}
	if len(form.Options) == 0 {
		form.Options = []string{""}
	}

	action := r.PostFormValue("action")
	switch {
	case action == "add":
		form.Options = append(form.Options, "")
		views.Render(w, http.StatusOK, views.PollForm, form)
		return
	case strings.HasPrefix(action, "remove-"):
		i, err := strconv.Atoi(strings.TrimPrefix(action, "remove-"))
		if err == nil && i >= 0 && i < len(form.Options) && len(form.Options) > 1 {
			form.Options = append(form.Options[:i:i], form.Options[i+1:]...)
		}
		views.Render(w, http.StatusOK, views.PollForm, form)
		return
	}

	_, err := h.polls.Create(r.Context(), models.CreatePollRequest{
		Title:       form.Title,
		Description: form.Description,
		Options:     form.Options,
	})
	if v, ok := service.IsValidation(err); ok {
		form.Notice = v.Message
		views.Render(w, http.StatusUnprocessableEntity, views.PollForm, form)
		return
	}
	if err != nil {
		storageError(w, err)
		return
	}

	redirectWithNotice(w, r, h.cfg.FlashSecret, "/polls", MsgPollCreated)
}

// PollDetail handles GET /polls/{id}
func (h *PageHandler) PollDetail(w http.ResponseWriter, r *http.Request) {
	notice := popNotice(w, r, h.cfg.FlashSecret)

	id, ok := parseID(r)
	if !ok {
		views.Render(w, http.StatusNotFound, views.NotFound, pollNotFound)
		return
	}

	poll, err := h.polls.Get(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		views.Render(w, http.StatusNotFound, views.NotFound, pollNotFound)
		return
	}
	if err != nil {
		storageError(w, err)
		return
	}

	views.Render(w, http.StatusOK, views.PollDetail, views.PollDetailPage{Notice: notice, Poll: poll})
}

// Vote handles POST /polls/{id}/vote
func (h *PageHandler) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		views.Render(w, http.StatusNotFound, views.NotFound, pollNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	_, err := h.polls.Vote(r.Context(), id, r.PostFormValue("option"))
	if errors.Is(err, service.ErrNotFound) {
		views.Render(w, http.StatusNotFound, views.NotFound, pollNotFound)
		return
	}
	if v, ok := service.IsValidation(err); ok {
		poll, getErr := h.polls.Get(r.Context(), id)
		if getErr != nil {
			storageError(w, getErr)
			return
		}
		views.Render(w, http.StatusUnprocessableEntity, views.PollDetail, views.PollDetailPage{Notice: v.Message, Poll: poll})
		return
	}
	if err != nil {
		storageError(w, err)
		return
	}

	redirectWithNotice(w, r, h.cfg.FlashSecret, "/polls", MsgVoteRecorded)
}

// GroupList handles GET /groups
func (h *PageHandler) GroupList(w http.ResponseWriter, r *http.Request) {
	notice := popNotice(w, r, h.cfg.FlashSecret)

	groups, err := h.groups.List(r.Context())
	if err != nil {
		storageError(w, err)
		return
	}

	views.Render(w, http.StatusOK, views.GroupList, views.GroupListPage{Notice: notice, Groups: groups})
}

// GroupForm handles GET /groups/create
func (h *PageHandler) GroupForm(w http.ResponseWriter, r *http.Request) {
	views.Render(w, http.StatusOK, views.GroupForm, views.GroupFormPage{
		Notice: popNotice(w, r, h.cfg.FlashSecret),
	})
}

// CreateGroup handles POST /groups/create
func (h *PageHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := views.GroupFormPage{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	}

	_, err := h.groups.Create(r.Context(), models.CreateGroupRequest{
		Title:       form.Title,
		Description: form.Description,
	})
	if v, ok := service.IsValidation(err); ok {
		form.Notice = v.Message
		views.Render(w, http.StatusUnprocessableEntity, views.GroupForm, form)
		return
	}
	if err != nil {
		storageError(w, err)
		return
	}

	redirectWithNotice(w, r, h.cfg.FlashSecret, "/groups", MsgGroupCreated)
}

// JoinGroup handles POST /groups/{id}/join
func (h *PageHandler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		views.Render(w, http.StatusNotFound, views.NotFound, groupNotFound)
		return
	}

	_, err := h.groups.Join(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		views.Render(w, http.StatusNotFound, views.NotFound, groupNotFound)
		return
	}
	if err != nil {
		storageError(w, err)
		return
	}

	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}
