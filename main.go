package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/db"
	"github.com/danielhkuo/pollboard/ids"
	"github.com/danielhkuo/pollboard/router"
	"github.com/danielhkuo/pollboard/service"
	"github.com/danielhkuo/pollboard/store"
)

func main() {
	var err error

	// Text logs on a terminal, JSON everywhere else
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.FlashSecret == "" {
		// Notices signed by a previous run no longer verify
		cfg.FlashSecret, err = auth.GenerateID(32)
		if err != nil {
			slog.Error("flash secret generation failed", "error", err)
			os.Exit(1)
		}
	}

	// Storage backend
	var kv store.KV
	switch cfg.DatabaseType {
	case cliparse.TypeMemory:
		kv = store.NewMemoryKV()
		slog.Info("Using in-memory storage")
	default:
		var dbConn *sql.DB
		dbConn, err = db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		dialect := store.DialectSQLite
		if cfg.DatabaseType == cliparse.TypePostgres {
			dialect = store.DialectPostgres
		}
		kv = store.NewSQLKV(dbConn, dialect)
	}

	// Services
	reg := store.NewRegistry(kv)
	gen := ids.NewGenerator()

	polls, err := service.NewPollService(reg, gen)
	if err != nil {
		slog.Error("poll service setup failed", "error", err)
		os.Exit(1)
	}
	groups, err := service.NewGroupService(reg, gen)
	if err != nil {
		slog.Error("group service setup failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := polls.Prime(ctx); err != nil {
		slog.Error("loading polls failed", "error", err)
		os.Exit(1)
	}
	if err := groups.Prime(ctx); err != nil {
		slog.Error("loading groups failed", "error", err)
		os.Exit(1)
	}

	if cfg.SeedFile != "" {
		seed, err := service.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			slog.Error("seed file unreadable", "path", cfg.SeedFile, "error", err)
			os.Exit(1)
		}
		if err := service.Seed(ctx, seed, polls, groups); err != nil {
			slog.Error("seeding failed", "path", cfg.SeedFile, "error", err)
			os.Exit(1)
		}
	}

	// Create router
	mux := router.NewRouter(polls, groups, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
