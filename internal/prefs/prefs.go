// Package prefs handles marquee user preferences persistence.
// Preferences are stored in ~/.config/marquee/prefs.toml.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for marquee.
type Prefs struct {
	Theme        string `toml:"theme"`
	ShowOverview bool   `toml:"show_overview"`
}

const (
	defaultPrefsPath = "~/.config/marquee/prefs.toml"
	DefaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used when nothing is stored.
func Default() Prefs {
	return Prefs{Theme: DefaultTheme}
}

// Load reads preferences from path. Any problem reading or parsing the file
// yields the defaults; preferences are never worth failing startup over.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default()
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Default()
	}

	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default()
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = DefaultTheme
	}
	return p
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
