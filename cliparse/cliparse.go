package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Database types accepted by -t
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMemory   = "memory"
)

const defaultSQLiteURL = "file:pollboard.db"

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	FlashSecret  string
	SeedFile     string
}

// LoadEnvFile loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("pollboard", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or memory)")
	fs.StringVar(&cfg.SeedFile, "seed", "", "YAML file with polls and groups to load into empty storage")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.FlashSecret, "flash-secret", "", "Notice cookie signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = TypeSQLite
		}
	}
	switch cfg.DatabaseType {
	case TypeSQLite, TypePostgres, TypeMemory:
	default:
		return Config{}, errors.New("database type must be one of: sqlite, postgres, memory")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case TypeSQLite:
			cfg.DatabaseURL = defaultSQLiteURL
		case TypePostgres:
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	if cfg.SeedFile == "" {
		cfg.SeedFile = os.Getenv("SEED_FILE")
	}

	// Optional - main generates a random one per process when unset
	if cfg.FlashSecret == "" {
		cfg.FlashSecret = os.Getenv("FLASH_SECRET")
	}

	return cfg, nil
}
