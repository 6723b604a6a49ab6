package cmd

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/skillcoach/internal/config"
	"github.com/abhisek/skillcoach/internal/logger"
	"github.com/abhisek/skillcoach/internal/practice"
	"github.com/abhisek/skillcoach/internal/store"
)

// runtime bundles what every command needs.
type runtime struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.Store
	service *practice.Service
}

func (r *runtime) Close() {
	r.log.Sync()
	r.store.Close()
}

// resolveConfig loads .env and the environment, then applies flags.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if m, _ := cmd.Flags().GetString("log-mode"); m != "" {
		cfg.LogMode = m
	}
	return cfg, nil
}

// resolveDBPath returns the --db/env path, creating its directory, or the
// default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openRuntime opens the logger, the store and the practice service. adjust
// runs after flags are applied.
func openRuntime(cmd *cobra.Command, adjust ...func(*config.Config)) (*runtime, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	for _, fn := range adjust {
		fn(&cfg)
	}
	log, err := logger.New(cfg.LogMode, cfg.LoggerOptions())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath,
		"misconception_schema", st.MisconceptionLog().SchemaVersion())

	opts := practice.Options{
		MisconceptionLog: st.MisconceptionLog(),
		Logger:           log,
		HistoryWindow:    cfg.HistoryWindow,
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	return &runtime{
		cfg:     cfg,
		log:     log,
		store:   st,
		service: practice.NewService(st, st, st, opts),
	}, nil
}
