package app

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/five82/marquee/internal/catalog"
	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/logging"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/trends"
	"github.com/five82/marquee/internal/ui"
)

// Options configure the marquee application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/marquee/prefs.toml
	MemoryStore bool   // keep trends in memory instead of the SQLite file
	Debug       bool
}

// Run boots the marquee TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := setup(opts)
	if err != nil {
		return err
	}
	defer env.close()

	env.logger.Info("marquee starting",
		"api", env.cfg.APIBaseURL,
		"token_set", env.cfg.APIToken != "",
		"trends", env.storeKind,
	)

	userPrefs := prefs.Load(env.prefsPath)

	err = ui.Run(ui.Options{
		Context:       ctx,
		Catalog:       env.catalog,
		Trends:        env.trends,
		Logger:        env.logger.Logger,
		Debounce:      env.cfg.Debounce,
		TrendingLimit: env.cfg.TrendingLimit,
		LogPath:       env.logger.Path(),
		ThemeName:     userPrefs.Theme,
		ShowOverview:  userPrefs.ShowOverview,
		PrefsPath:     env.prefsPath,
	})
	if err != nil {
		env.logger.Error("ui exited with error", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}
	env.logger.Info("marquee stopped")
	return nil
}

// environment holds everything Run wires together.
type environment struct {
	cfg       config.Config
	logger    *logging.Logger
	catalog   *catalog.Client
	trends    trends.Store
	storeKind string
	prefsPath string
}

func setup(opts Options) (*environment, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := log.InfoLevel
	if opts.Debug {
		level = log.DebugLevel
	}
	logger, err := logging.Open(cfg.LogPath(), level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	client, err := catalog.New(catalog.Options{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
		Timeout: cfg.RequestTimeout,
	})
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("init catalog client: %w", err)
	}

	store, kind := openTrends(cfg, opts.MemoryStore, logger.Logger)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return &environment{
		cfg:       cfg,
		logger:    logger,
		catalog:   client,
		trends:    store,
		storeKind: kind,
		prefsPath: prefsPath,
	}, nil
}

// openTrends opens the SQLite trend store, degrading to the in-memory store
// when the database is unavailable. Trending is never worth refusing to start.
func openTrends(cfg config.Config, memory bool, logger *log.Logger) (trends.Store, string) {
	if memory {
		return trends.NewMemory(cfg.ImageBaseURL), "memory"
	}
	path := cfg.TrendsDBPath()
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Warn("trend store unavailable, using memory", "path", path, "error", err)
		return trends.NewMemory(cfg.ImageBaseURL), "memory"
	}
	store, err := trends.OpenSQLite(path, cfg.ImageBaseURL)
	if err != nil {
		logger.Warn("trend store unavailable, using memory", "path", path, "error", err)
		return trends.NewMemory(cfg.ImageBaseURL), "memory"
	}
	return store, "sqlite"
}

func (e *environment) close() {
	if err := e.trends.Close(); err != nil {
		e.logger.Warn("close trend store", "error", err)
	}
	_ = e.logger.Close()
}
