// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the poll board server.

The poll board lets visitors create polls, vote on them and join groups.
Every list is stored whole as a JSON value under a single key, so the
server runs the same over memory, SQLite or PostgreSQL.

# Starting the Server

With no configuration the server stores data in ./pollboard.db:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Settings are read from flags, then the environment, then a .env file in
the working directory:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string, required for postgres
  - FLASH_SECRET (-flash-secret): Key for signing notice cookies
  - SEED_FILE (-seed): YAML file with initial polls and groups

# Architecture

  - handlers: HTML pages and JSON API
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - service: Poll and group operations, validation, seeding
  - store: Shared typed accessors over a key-value backend
  - views: Embedded HTML templates
  - models: Records and request types
  - ids: Time-ordered record ids
  - auth: Random ids and signed values
  - db: Connection and schema
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
