// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/service"
	"github.com/danielhkuo/pollboard/testutil"
)

func newPageHandler(t *testing.T) (*PageHandler, *testutil.Env) {
	t.Helper()
	env := testutil.NewMemoryEnv(t)
	return NewPageHandler(env.Polls, env.Groups, env.Config), env
}

// noticeFrom returns the notice set by a response, or ""
func noticeFrom(t *testing.T, w *httptest.ResponseRecorder, secret string) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == noticeCookie && c.Value != "" {
			msg, err := auth.Verify(c.Value, secret)
			if err != nil {
				t.Fatalf("Invalid notice cookie: %v", err)
			}
			return msg
		}
	}
	return ""
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	testutil.AssertStatus(t, w, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to '%s', got '%s'", location, got)
	}
}

func TestPollList_EmptyState(t *testing.T) {
	h, _ := newPageHandler(t)

	w := httptest.NewRecorder()
	h.PollList(w, httptest.NewRequest("GET", "/polls", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertContains(t, w, "No polls available. Be the first to create one!", "Create New Poll")
}

func TestCreatePollPage(t *testing.T) {
	h, env := newPageHandler(t)

	form := url.Values{
		"title":       {"Colors"},
		"description": {""},
		"option":      {"Red", "Blue"},
		"action":      {"create"},
	}
	w := httptest.NewRecorder()
	h.CreatePoll(w, testutil.MakeFormRequest("/polls/create", form))

	assertRedirect(t, w, "/polls")
	if msg := noticeFrom(t, w, env.Config.FlashSecret); msg != MsgPollCreated {
		t.Errorf("Expected notice '%s', got '%s'", MsgPollCreated, msg)
	}

	polls := testutil.StoredPolls(t, env)
	if len(polls) != 1 {
		t.Fatalf("Expected 1 poll, got %d", len(polls))
	}
	if polls[0].Title != "Colors" || polls[0].Options[0].Value != "red" || polls[0].Options[1].Label != "Blue" {
		t.Errorf("Unexpected stored poll: %+v", polls[0])
	}
}

func TestCreatePollPage_Validation(t *testing.T) {
	testCases := []struct {
		name string
		form url.Values
	}{
		{"blank title", url.Values{"title": {"  "}, "option": {"Red"}}},
		{"blank option", url.Values{"title": {"Colors"}, "option": {"Red", ""}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, env := newPageHandler(t)

			w := httptest.NewRecorder()
			h.CreatePoll(w, testutil.MakeFormRequest("/polls/create", tc.form))

			testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
			testutil.AssertContains(t, w, service.MsgPollFieldsRequired)
			if testutil.StoredBytes(t, env, models.PollsKey) != "" {
				t.Error("Rejected form must not persist anything")
			}
		})
	}
}

func TestCreatePollPage_OptionRows(t *testing.T) {
	h, env := newPageHandler(t)

	t.Run("add keeps entered values", func(t *testing.T) {
		form := url.Values{"title": {"Colors"}, "option": {"Red"}, "action": {"add"}}
		w := httptest.NewRecorder()
		h.CreatePoll(w, testutil.MakeFormRequest("/polls/create", form))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, `value="Colors"`, `value="Red"`, `value="remove-1"`)
	})

	t.Run("remove drops the row", func(t *testing.T) {
		form := url.Values{"title": {"Colors"}, "option": {"Red", "Green", "Blue"}, "action": {"remove-1"}}
		w := httptest.NewRecorder()
		h.CreatePoll(w, testutil.MakeFormRequest("/polls/create", form))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, `value="Red"`, `value="Blue"`)
		if strings.Contains(w.Body.String(), `value="Green"`) {
			t.Error("Expected Green to be removed")
		}
	})

	if testutil.StoredBytes(t, env, models.PollsKey) != "" {
		t.Error("Editing option rows must not persist anything")
	}
}

func TestPollDetailPage(t *testing.T) {
	h, env := newPageHandler(t)
	poll := testutil.CreateTestPoll(t, env, "Colors", "Red", "Blue")
	id := strconv.FormatInt(poll.ID, 10)
	before := testutil.StoredBytes(t, env, models.PollsKey)

	testCases := []struct {
		name           string
		id             string
		expectedStatus int
		contains       []string
	}{
		{"existing poll", id, http.StatusOK, []string{"Colors", "Red [0]", "Blue [0]", "Submit Vote"}},
		{"unknown id", "99", http.StatusNotFound, []string{"Poll Not Found", "The poll you are looking for does not exist."}},
		{"non-numeric id", "abc", http.StatusNotFound, []string{"Poll Not Found"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/polls/"+tc.id, nil)
			req.SetPathValue("id", tc.id)
			w := httptest.NewRecorder()

			h.PollDetail(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			testutil.AssertContains(t, w, tc.contains...)
		})
	}

	if testutil.StoredBytes(t, env, models.PollsKey) != before {
		t.Error("Detail view must not change stored polls")
	}
}

func TestVotePage(t *testing.T) {
	h, env := newPageHandler(t)
	poll := testutil.CreateTestPoll(t, env, "Colors", "Red", "Blue")
	id := strconv.FormatInt(poll.ID, 10)

	vote := func(option string) *httptest.ResponseRecorder {
		form := url.Values{}
		if option != "" {
			form.Set("option", option)
		}
		req := testutil.MakeFormRequest("/polls/"+id+"/vote", form)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.Vote(w, req)
		return w
	}

	t.Run("no selection", func(t *testing.T) {
		before := testutil.StoredBytes(t, env, models.PollsKey)

		w := vote("")

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
		testutil.AssertContains(t, w, service.MsgSelectOption, "Red [0]")
		if testutil.StoredBytes(t, env, models.PollsKey) != before {
			t.Error("Vote without selection must not change stored polls")
		}
	})

	t.Run("valid vote", func(t *testing.T) {
		w := vote("blue")

		assertRedirect(t, w, "/polls")
		if msg := noticeFrom(t, w, env.Config.FlashSecret); msg != MsgVoteRecorded {
			t.Errorf("Expected notice '%s', got '%s'", MsgVoteRecorded, msg)
		}

		stored := testutil.StoredPolls(t, env)
		if stored[0].Options[0].Count != 0 || stored[0].Options[1].Count != 1 {
			t.Errorf("Expected red=0 blue=1, got %+v", stored[0].Options)
		}
	})

	t.Run("unknown poll", func(t *testing.T) {
		req := testutil.MakeFormRequest("/polls/5/vote", url.Values{"option": {"red"}})
		req.SetPathValue("id", "5")
		w := httptest.NewRecorder()
		h.Vote(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertContains(t, w, "Poll Not Found")
	})
}

func TestNoticeIsShownOnce(t *testing.T) {
	h, env := newPageHandler(t)

	req := httptest.NewRequest("GET", "/polls", nil)
	req.AddCookie(&http.Cookie{Name: noticeCookie, Value: auth.Sign(MsgPollCreated, env.Config.FlashSecret)})
	w := httptest.NewRecorder()
	h.PollList(w, req)

	testutil.AssertContains(t, w, MsgPollCreated)

	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == noticeCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Expected notice cookie to be cleared")
	}
}

func TestNoticeTampered(t *testing.T) {
	h, _ := newPageHandler(t)

	req := httptest.NewRequest("GET", "/polls", nil)
	req.AddCookie(&http.Cookie{Name: noticeCookie, Value: auth.Sign("Injected", "wrong-secret")})
	w := httptest.NewRecorder()
	h.PollList(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if strings.Contains(w.Body.String(), "Injected") {
		t.Error("Tampered notice must not be shown")
	}
}

func TestGroupPages(t *testing.T) {
	h, env := newPageHandler(t)

	t.Run("empty state", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GroupList(w, httptest.NewRequest("GET", "/groups", nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		testutil.AssertContains(t, w, "No groups available. Be the first to create one!")
	})

	t.Run("blank title", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.CreateGroup(w, testutil.MakeFormRequest("/groups/create", url.Values{"title": {""}, "description": {"d"}}))

		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
		testutil.AssertContains(t, w, service.MsgGroupFieldsRequired, "d</textarea>")
		if testutil.StoredBytes(t, env, models.GroupsKey) != "" {
			t.Error("Rejected group must not be persisted")
		}
	})

	t.Run("create", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.CreateGroup(w, testutil.MakeFormRequest("/groups/create", url.Values{"title": {"Gophers"}}))

		assertRedirect(t, w, "/groups")
		if msg := noticeFrom(t, w, env.Config.FlashSecret); msg != MsgGroupCreated {
			t.Errorf("Expected notice '%s', got '%s'", MsgGroupCreated, msg)
		}
	})

	groups := testutil.StoredGroups(t, env)
	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	id := strconv.FormatInt(groups[0].ID, 10)

	t.Run("join", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/groups/"+id+"/join", nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.JoinGroup(w, req)

		assertRedirect(t, w, "/groups")
		if !testutil.StoredGroups(t, env)[0].Joined {
			t.Error("Expected group to be joined")
		}

		list := httptest.NewRecorder()
		h.GroupList(list, httptest.NewRequest("GET", "/groups", nil))
		testutil.AssertContains(t, list, "Gophers", "joined")
	})

	t.Run("join unknown", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/groups/3/join", nil)
		req.SetPathValue("id", "3")
		w := httptest.NewRecorder()
		h.JoinGroup(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertContains(t, w, "Group Not Found")
	})
}
