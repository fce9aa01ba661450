// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the poll board.

# Handler Types

  - PageHandler: server-rendered list, create and vote pages
  - PollHandler: JSON poll endpoints
  - GroupHandler: JSON group endpoints

All of them sit on top of the service package:

	pages := handlers.NewPageHandler(polls, groups, cfg)
	api := handlers.NewPollHandler(polls)

# Pages

The create form posts back to itself. Its action field either edits the
option rows ("add", "remove-N") or submits the poll. Invalid input
re-renders the form with 422 and a notice; nothing is stored.

A successful submission redirects (303) to the list page and leaves a
one-shot notice in a signed cookie, shown on the next page view.

# JSON API

Validation failures return 400 with the message, unknown ids 404, and
storage failures 500.
*/
package handlers
