// Package config resolves runtime configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abhisek/skillcoach/internal/logger"
	"github.com/abhisek/skillcoach/internal/remediation"
)

// Environment variables read by FromEnv.
const (
	EnvDB            = "SKILLCOACH_DB"
	EnvLogMode       = "SKILLCOACH_LOG_MODE"
	EnvLogFile       = "SKILLCOACH_LOG_FILE"
	EnvRedact        = "SKILLCOACH_LOG_REDACT"
	EnvHistoryWindow = "SKILLCOACH_HISTORY_WINDOW"
	EnvSeed          = "SKILLCOACH_SEED"
)

// Config holds runtime configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means store.DefaultDBPath.
	DBPath string

	// LogMode is one of the logger modes (dev, prod, warn, off).
	LogMode string

	// LogFile redirects logs away from stderr when set.
	LogFile string

	// RedactStudentIDs hashes student ids in log output.
	RedactStudentIDs bool

	// HistoryWindow is how many recent attempts the remediation tracker scans.
	HistoryWindow int

	// Seed makes question selection reproducible. Zero means unseeded.
	Seed uint64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogMode:       logger.ModeWarn,
		HistoryWindow: remediation.DefaultWindow,
	}
}

// Load reads the given .env files (default ".env") if they exist, then
// resolves the configuration from the environment. Variables already set in
// the environment win over the files.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv overlays environment variables on DefaultConfig.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = getEnv(EnvDB, cfg.DBPath)
	cfg.LogMode = getEnv(EnvLogMode, cfg.LogMode)
	cfg.LogFile = getEnv(EnvLogFile, cfg.LogFile)

	if v := getEnv(EnvRedact, ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvRedact, err)
		}
		cfg.RedactStudentIDs = b
	}

	if v := getEnv(EnvHistoryWindow, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("%s: want a positive integer, got %q", EnvHistoryWindow, v)
		}
		cfg.HistoryWindow = n
	}

	if v := getEnv(EnvSeed, ""); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = n
	}

	return cfg, nil
}

// LoggerOptions returns the logger options implied by cfg.
func (c Config) LoggerOptions() logger.Options {
	opts := logger.Options{RedactStudentIDs: c.RedactStudentIDs}
	if c.LogFile != "" {
		opts.OutputPaths = []string{c.LogFile}
	}
	return opts
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
