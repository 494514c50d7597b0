package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/search"
)

// Preferences is the live preference store behind a config file.
// Every read goes to viper, so a Snapshot always reflects the current values.
type Preferences struct {
	v    *viper.Viper
	path string
}

// Entry is a single key/value pair for display
type Entry struct {
	Key   string
	Value string
}

// settable lists the keys accepted by Set
var settable = []string{
	domain.PrefExternalPlayer,
	domain.PrefExternalPlayerContinuous,
	domain.PrefExternalPlayerFilter,
	"internal_player.command",
	"logging.file",
	"logging.level",
	"storage.path",
}

// Config decodes the current settings
func (p *Preferences) Config() (*Config, error) {
	cfg := DefaultConfig()
	if err := p.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return cfg, nil
}

// Snapshot returns the playback preferences as they are right now.
// Missing or malformed values resolve to the documented defaults.
func (p *Preferences) Snapshot() domain.PlaybackConfig {
	cfg := domain.DefaultPlaybackConfig()
	if b, err := cast.ToBoolE(p.v.Get(domain.PrefExternalPlayer)); err == nil {
		cfg.ExternalPlayerEnabled = b
	}
	if b, err := cast.ToBoolE(p.v.Get(domain.PrefExternalPlayerContinuous)); err == nil {
		cfg.QueueContinuationEnabled = b
	}
	if s := strings.TrimSpace(p.v.GetString(domain.PrefExternalPlayerFilter)); s != "" {
		cfg.SelectedExternalPlayer = s
	}
	return cfg
}

// Set changes a single preference in memory; call Save to persist it
func (p *Preferences) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))

	switch key {
	case domain.PrefExternalPlayer, domain.PrefExternalPlayerContinuous:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("%s: %q is not a boolean", key, value)
		}
		p.v.Set(key, b)
	case domain.PrefExternalPlayerFilter:
		id, known := domain.ParsePlayerID(value)
		if !known {
			return unknownPlayerError(key, value)
		}
		p.v.Set(key, string(id))
	case "internal_player.command", "logging.file", "storage.path":
		p.v.Set(key, value)
	case "logging.level":
		level := strings.ToUpper(strings.TrimSpace(value))
		switch level {
		case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		default:
			return fmt.Errorf("logging.level: unknown level %q", value)
		}
		p.v.Set(key, level)
	default:
		if hint, ok := search.Closest(key, settable); ok {
			return fmt.Errorf("unknown setting %q (did you mean %q?)", key, hint)
		}
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Save writes the current settings to the config file
func (p *Preferences) Save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the file Save writes to
func (p *Preferences) Path() string {
	return p.path
}

// Entries returns every known setting, sorted by key
func (p *Preferences) Entries() []Entry {
	keys := p.v.AllKeys()
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Value: fmt.Sprint(p.v.Get(k))})
	}
	return entries
}
