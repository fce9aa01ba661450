// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollboard/auth"
)

const noticeCookie = "notice"

// setNotice stores a one-shot message shown on the next page view
func setNotice(w http.ResponseWriter, secret, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    auth.Sign(message, secret),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popNotice returns the pending message, if any, and clears it
func popNotice(w http.ResponseWriter, r *http.Request, secret string) string {
	c, err := r.Cookie(noticeCookie)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     noticeCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	message, err := auth.Verify(c.Value, secret)
	if err != nil {
		slog.Warn("discarding notice cookie", "error", err)
		return ""
	}
	return message
}

// redirectWithNotice implements post/redirect/get after a successful form
func redirectWithNotice(w http.ResponseWriter, r *http.Request, secret, path, message string) {
	setNotice(w, secret, message)
	http.Redirect(w, r, path, http.StatusSeeOther)
}
