package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dbkit/pagepool/internal/config"
	"github.com/dbkit/pagepool/pkg/adminserver"
	"github.com/dbkit/pagepool/pkg/storage"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Open a page file's buffer pool and serve the admin API over it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "pagepool.yaml", "path to a pagepoolctl config file")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()
	sugar := log.Sugar()

	if _, statErr := os.Stat(cfg.Storage.File); os.IsNotExist(statErr) {
		if err := storage.CreatePageFile(cfg.Storage.File); err != nil {
			return fmt.Errorf("create %s: %w", cfg.Storage.File, err)
		}
	}

	pageFile, err := storage.OpenPageFile(cfg.Storage.File)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Storage.File, err)
	}

	strategy, err := storage.ParseStrategy(cfg.Pool.Strategy)
	if err != nil {
		return err
	}

	pool, err := storage.Init(pageFile, cfg.Pool.Capacity, strategy, sugar)
	if err != nil {
		return fmt.Errorf("init buffer pool: %w", err)
	}

	adminCfg := adminserver.DefaultConfig()
	adminCfg.Host = cfg.Admin.Host
	adminCfg.Port = cfg.Admin.Port
	adminCfg.PollInterval = time.Duration(cfg.Admin.PollIntervalMs) * time.Millisecond

	srv := adminserver.New(adminCfg, pool, sugar)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("admin server: %w", err)
	}

	return pool.Shutdown()
}

func newLogger(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg.Level = lvl

	return cfg.Build()
}
