// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/pollboard/models"
)

func TestOptionLabel(t *testing.T) {
	testCases := []struct {
		option   models.Option
		expected string
	}{
		{models.Option{Label: "Red", Count: 0}, "Red [0]"},
		{models.Option{Label: "Blue", Count: 1}, "Blue [1]"},
		{models.Option{Label: "Go", Count: 1234567}, "Go [1,234,567]"},
	}

	for _, tc := range testCases {
		if got := OptionLabel(tc.option); got != tc.expected {
			t.Errorf("Expected '%s', got '%s'", tc.expected, got)
		}
	}
}

func TestRender(t *testing.T) {
	poll := models.Poll{
		ID:    17,
		Title: "Colors",
		Options: []models.Option{
			{Value: "red", Label: "Red"},
			{Value: "blue", Label: "Blue", Count: 2},
		},
	}

	testCases := []struct {
		name     string
		page     string
		status   int
		data     any
		contains []string
	}{
		{"empty poll list", PollList, http.StatusOK, PollListPage{},
			[]string{"No polls available. Be the first to create one!", `href="/polls/create"`}},
		{"poll list", PollList, http.StatusOK, PollListPage{Notice: "Poll created successfully!", Polls: []models.Poll{poll}},
			[]string{"Colors", `href="/polls/17"`, "Vote", "Poll created successfully!"}},
		{"poll form", PollForm, http.StatusOK, PollFormPage{Title: "T", Options: []string{"A", "B"}},
			[]string{`value="T"`, `value="A"`, `value="remove-1"`, "Add Option"}},
		{"poll detail", PollDetail, http.StatusOK, PollDetailPage{Poll: poll},
			[]string{"Red [0]", "Blue [2]", `value="blue"`, `action="/polls/17/vote"`}},
		{"empty group list", GroupList, http.StatusOK, GroupListPage{},
			[]string{"No groups available. Be the first to create one!"}},
		{"group list", GroupList, http.StatusOK, GroupListPage{Groups: []models.Group{
			{ID: 1, Title: "Open"}, {ID: 2, Title: "Mine", Joined: true}}},
			[]string{`action="/groups/1/join"`, "joined"}},
		{"group form", GroupForm, http.StatusUnprocessableEntity, GroupFormPage{Notice: "Please fill in all fields."},
			[]string{"Please fill in all fields.", "Create Group"}},
		{"not found", NotFound, http.StatusNotFound, NotFoundPage{Heading: "Poll Not Found", Message: "gone"},
			[]string{"Poll Not Found", "gone"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Render(w, tc.status, tc.page, tc.data)

			if w.Code != tc.status {
				t.Errorf("Expected status %d, got %d", tc.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Expected HTML content type, got '%s'", ct)
			}
			body := w.Body.String()
			for _, want := range tc.contains {
				if !strings.Contains(body, want) {
					t.Errorf("Expected body to contain %q", want)
				}
			}
		})
	}
}

// firstSubmitAction returns the action value of the first submit button,
// which browsers use when Enter is pressed in a text field.
func firstSubmitAction(t *testing.T, body string) string {
	t.Helper()
	i := strings.Index(body, `type="submit"`)
	if i < 0 {
		t.Fatal("Expected a submit button")
	}
	rest := body[i:]
	end := strings.Index(rest, ">")
	attrs := rest[:end]
	const marker = `value="`
	j := strings.Index(attrs, marker)
	if j < 0 {
		t.Fatalf("Submit button has no value: %s", attrs)
	}
	value := attrs[j+len(marker):]
	return value[:strings.Index(value, `"`)]
}

func TestPollForm_EnterCreates(t *testing.T) {
	testCases := []struct {
		name    string
		options []string
	}{
		{"one option", []string{"Red"}},
		{"two options", []string{"Red", "Blue"}},
		{"three options", []string{"Red", "Blue", "Green"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Render(w, http.StatusOK, PollForm, PollFormPage{Title: "Colors", Options: tc.options})

			if got := firstSubmitAction(t, w.Body.String()); got != "create" {
				t.Errorf("Expected first submit button to be 'create', got '%s'", got)
			}
		})
	}
}

func TestRender_EscapesInput(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, http.StatusOK, PollList, PollListPage{Polls: []models.Poll{{ID: 1, Title: "<script>x</script>"}}})

	if strings.Contains(w.Body.String(), "<script>x</script>") {
		t.Error("Expected title to be HTML escaped")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	w := httptest.NewRecorder()
	Render(w, http.StatusOK, "missing", nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
