package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything marquee needs at startup.
type Config struct {
	APIBaseURL     string
	ImageBaseURL   string
	APIToken       string
	DataDir        string
	TrendingLimit  int
	Debounce       time.Duration
	RequestTimeout time.Duration
}

// TokenEnv names the environment variable holding the catalog bearer token.
const TokenEnv = "TMDB_API_TOKEN"

const (
	defaultConfigPath     = "~/.config/marquee/config.toml"
	defaultAPIBaseURL     = "https://api.themoviedb.org/3"
	defaultImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	defaultDataDir        = "~/.local/share/marquee"
	defaultTrendingLimit  = 5
	defaultDebounceMS     = 300
	defaultRequestTimeout = 10
)

// Load locates and parses the marquee config, falling back to defaults when
// missing. The API token always comes from the environment.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL            string `toml:"api_base_url"`
		ImageBaseURL          string `toml:"image_base_url"`
		DataDir               string `toml:"data_dir"`
		TrendingLimit         int    `toml:"trending_limit"`
		DebounceMS            int    `toml:"debounce_ms"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.ImageBaseURL); v != "" {
		cfg.ImageBaseURL = v
	}
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if raw.TrendingLimit > 0 {
		cfg.TrendingLimit = raw.TrendingLimit
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIBaseURL:     defaultAPIBaseURL,
		ImageBaseURL:   defaultImageBaseURL,
		APIToken:       strings.TrimSpace(os.Getenv(TokenEnv)),
		DataDir:        mustExpand(defaultDataDir),
		TrendingLimit:  defaultTrendingLimit,
		Debounce:       defaultDebounceMS * time.Millisecond,
		RequestTimeout: defaultRequestTimeout * time.Second,
	}
}

// TrendsDBPath returns the path to the trend database.
func (c Config) TrendsDBPath() string {
	return filepath.Join(c.dataDir(), "trends.db")
}

// LogPath returns the path to the application log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "marquee.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
