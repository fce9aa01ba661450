// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p             Server port (default: 3318)
	-t             Database type: sqlite, postgres or memory (default: sqlite)
	-d             Database URL (default for sqlite: file:pollboard.db)
	-seed          YAML seed file
	-flash-secret  Notice cookie signing secret

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_TYPE → -t
	DATABASE_URL  → -d
	SEED_FILE     → -seed
	FLASH_SECRET  → -flash-secret

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file into the environment first; variables already set win.

# Validation

ParseFlags returns an error when the database type is unknown, PORT is not a
number, or postgres is selected without a URL. A missing FLASH_SECRET is not
an error: the server then signs notices with a random per-process secret.
*/
package cliparse
