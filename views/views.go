// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/pollboard/models"
)

// Page names accepted by Render
const (
	PollList   = "poll_list"
	PollForm   = "poll_form"
	PollDetail = "poll_detail"
	GroupList  = "group_list"
	GroupForm  = "group_form"
	NotFound   = "not_found"
)

const (
	layoutFile  = "templates/layout.html"
	templateDir = "templates/"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"optionLabel": OptionLabel,
}

var pages = mustParse(PollList, PollForm, PollDetail, GroupList, GroupForm, NotFound)

func mustParse(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t := template.Must(template.New("layout.html").Funcs(funcs).
			ParseFS(files, layoutFile, templateDir+name+".html"))
		out[name] = t
	}
	return out
}

// OptionLabel renders an option as "label [count]".
func OptionLabel(o models.Option) string {
	return fmt.Sprintf("%s [%s]", o.Label, humanize.Comma(o.Count))
}

type PollListPage struct {
	Notice string
	Polls  []models.Poll
}

type PollFormPage struct {
	Notice      string
	Title       string
	Description string
	Options     []string
}

type PollDetailPage struct {
	Notice string
	Poll   models.Poll
}

type GroupListPage struct {
	Notice string
	Groups []models.Group
}

type GroupFormPage struct {
	Notice      string
	Title       string
	Description string
}

type NotFoundPage struct {
	Notice  string
	Heading string
	Message string
}

// Render executes a page into a buffer first so a template error never
// leaves a half-written response.
func Render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := pages[page]
	if !ok {
		slog.Error("unknown page", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "page", page, "error", err)
	}
}
