// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/db"
	"github.com/danielhkuo/pollboard/ids"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/service"
	"github.com/danielhkuo/pollboard/store"
)

// Env bundles the services and the raw backend of one test
type Env struct {
	KV     store.KV
	Polls  *service.PollService
	Groups *service.GroupService
	Config cliparse.Config
}

// SetupTestDB creates a fresh SQLite database file with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: cliparse.TypeMemory,
		FlashSecret:  "test-flash-secret",
	}
}

// NewEnv wires services over the given backend
func NewEnv(t *testing.T, kv store.KV) *Env {
	t.Helper()

	reg := store.NewRegistry(kv)
	gen := ids.NewGenerator()

	polls, err := service.NewPollService(reg, gen)
	if err != nil {
		t.Fatalf("Failed to create poll service: %v", err)
	}
	groups, err := service.NewGroupService(reg, gen)
	if err != nil {
		t.Fatalf("Failed to create group service: %v", err)
	}

	return &Env{KV: kv, Polls: polls, Groups: groups, Config: GetTestConfig()}
}

// NewMemoryEnv wires services over an in-memory backend
func NewMemoryEnv(t *testing.T) *Env {
	t.Helper()
	return NewEnv(t, store.NewMemoryKV())
}

// NewSQLiteEnv wires services over a fresh SQLite database
func NewSQLiteEnv(t *testing.T) *Env {
	t.Helper()
	return NewEnv(t, store.NewSQLKV(SetupTestDB(t), store.DialectSQLite))
}

// CreateTestPoll creates a poll with the given option labels
func CreateTestPoll(t *testing.T, env *Env, title string, options ...string) models.Poll {
	t.Helper()

	poll, err := env.Polls.Create(context.Background(), models.CreatePollRequest{
		Title:       title,
		Description: "A test poll",
		Options:     options,
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}
	return poll
}

// CreateTestGroup creates a group that has not been joined
func CreateTestGroup(t *testing.T, env *Env, title string) models.Group {
	t.Helper()

	group, err := env.Groups.Create(context.Background(), models.CreateGroupRequest{
		Title:       title,
		Description: "A test group",
	})
	if err != nil {
		t.Fatalf("Failed to create test group: %v", err)
	}
	return group
}

// StoredBytes returns the raw persisted value of key, or "" when absent
func StoredBytes(t *testing.T, env *Env, key string) string {
	t.Helper()

	raw, err := env.KV.Get(context.Background(), key)
	if err == store.ErrNotFound {
		return ""
	}
	if err != nil {
		t.Fatalf("Failed to read %s: %v", key, err)
	}
	return string(raw)
}

// StoredPolls decodes the persisted poll list
func StoredPolls(t *testing.T, env *Env) []models.Poll {
	t.Helper()

	var polls []models.Poll
	if raw := StoredBytes(t, env, models.PollsKey); raw != "" {
		if err := json.Unmarshal([]byte(raw), &polls); err != nil {
			t.Fatalf("Failed to decode polls: %v", err)
		}
	}
	return polls
}

// StoredGroups decodes the persisted group list
func StoredGroups(t *testing.T, env *Env) []models.Group {
	t.Helper()

	var groups []models.Group
	if raw := StoredBytes(t, env, models.GroupsKey); raw != "" {
		if err := json.Unmarshal([]byte(raw), &groups); err != nil {
			t.Fatalf("Failed to decode groups: %v", err)
		}
	}
	return groups
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a URL-encoded form POST
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertContains checks that the response body contains every string
func AssertContains(t *testing.T, w *httptest.ResponseRecorder, want ...string) {
	t.Helper()
	body := w.Body.String()
	for _, s := range want {
		if !strings.Contains(body, s) {
			t.Errorf("Expected body to contain %q. Body: %s", s, body)
		}
	}
}
