package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/config"
	"github.com/abhisek/skillpath/internal/logging"
	"github.com/abhisek/skillpath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "skillpath",
	Short: "Quiz engine for career-transition roadmaps",
	Long: `skillpath serves knowledge-check quizzes for the theory milestones of a
learner's roadmap. Questions come from a shared pool that is topped up by an
LLM whenever a topic runs low.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (overrides database.dsn)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config and applies --db on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.Driver = store.DriverSQLite
		cfg.Database.DSN = p
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// openStore opens the configured database. An empty SQLite DSN resolves to
// the default data directory.
func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (*store.Store, error) {
	dsn := cfg.Database.DSN
	if dsn == "" && cfg.Database.Driver != store.DriverPostgres {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dsn = p
	}
	st, err := store.Open(ctx, store.Options{
		Driver:   cfg.Database.Driver,
		DSN:      dsn,
		MaxConns: cfg.Database.MaxConns,
		Logger:   log,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// env bundles what most subcommands need.
type env struct {
	cfg   config.Config
	log   *zap.Logger
	store *store.Store
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	st, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: st}, nil
}

func (e *env) Close() {
	e.store.Close()
	_ = e.log.Sync()
}
