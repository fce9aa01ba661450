// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL database and creates its schema.

# Drivers

Open accepts a database type and connection URL:

	conn, err := db.Open(db.TypeSQLite, "file:pollboard.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")

SQLite uses the pure-Go modernc.org/sqlite driver and is limited to one open
connection. PostgreSQL uses github.com/lib/pq.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

	kv_entry(store_key PRIMARY KEY, payload, updated_at)

Each row holds one whole record list ("polls" or "groups") as JSON.
*/
package db
