// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the poll board.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(polls, groups, cfg)

# Endpoints

Health:

	GET /health
	GET /       - Redirects to /polls

Poll pages:

	GET  /polls           - Poll list
	GET  /polls/create    - Create form
	POST /polls/create    - Add/remove option rows or submit
	GET  /polls/{id}      - Detail and vote form
	POST /polls/{id}/vote - Record a vote

Group pages:

	GET  /groups           - Group list
	GET  /groups/create    - Create form
	POST /groups/create    - Submit
	POST /groups/{id}/join - Mark joined

JSON API (CORS enabled):

	GET  /api/polls
	POST /api/polls
	GET  /api/polls/{id}
	POST /api/polls/{id}/vote
	GET  /api/groups
	POST /api/groups
	POST /api/groups/{id}/join

Every route except /health is wrapped with request logging.
*/
package router
