// Package config loads serenity's settings and playback preferences.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/player"
	"github.com/VuDung/serenity/internal/search"
)

const envPrefix = "SERENITY"

// Config holds all application configuration
type Config struct {
	// Playback preferences, stored at the top level under their historical keys
	ExternalPlayer           bool   `mapstructure:"external_player"`
	ExternalPlayerContinuous bool   `mapstructure:"external_player_continuous_playback"`
	ExternalPlayerFilter     string `mapstructure:"serenity_external_player_filter"`

	Players        map[string]PlayerOverride `mapstructure:"players"`
	InternalPlayer InternalPlayerConfig      `mapstructure:"internal_player"`
	Logging        LoggingConfig             `mapstructure:"logging"`
	Storage        StorageConfig             `mapstructure:"storage"`
}

// PlayerOverride replaces the built-in launch command of an external player
type PlayerOverride struct {
	Command   string   `mapstructure:"command"`
	Args      []string `mapstructure:"args"`
	StartFlag string   `mapstructure:"start_flag"` // e.g., "--start=" or "-ss "
}

// InternalPlayerConfig holds the built-in mpv player configuration
type InternalPlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// StorageConfig holds the local catalog location
type StorageConfig struct {
	Path string `mapstructure:"path"` // Directory holding serenity.db, empty = memory only
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	prefs := domain.DefaultPlaybackConfig()
	return &Config{
		ExternalPlayer:           prefs.ExternalPlayerEnabled,
		ExternalPlayerContinuous: prefs.QueueContinuationEnabled,
		ExternalPlayerFilter:     prefs.SelectedExternalPlayer,
		Players:                  map[string]PlayerOverride{},
		InternalPlayer: InternalPlayerConfig{
			Command: "mpv",
			Args:    []string{},
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "serenity.log"),
			Level: "INFO",
		},
		Storage: StorageConfig{
			Path: defaultDataPath(),
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "serenity")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "serenity")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "serenity")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "serenity")
	}
}

// Load reads configuration from path, or from the default locations when
// path is empty. A missing config file is not an error.
func Load(path string) (*Preferences, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. SERENITY_EXTERNAL_PLAYER=true
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	target := v.ConfigFileUsed()
	if target == "" {
		target = filepath.Join(defaultConfigPath(), "config.yaml")
	}
	return &Preferences{v: v, path: target}, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault(domain.PrefExternalPlayer, cfg.ExternalPlayer)
	v.SetDefault(domain.PrefExternalPlayerContinuous, cfg.ExternalPlayerContinuous)
	v.SetDefault(domain.PrefExternalPlayerFilter, cfg.ExternalPlayerFilter)
	v.SetDefault("internal_player.command", cfg.InternalPlayer.Command)
	v.SetDefault("internal_player.args", cfg.InternalPlayer.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("storage.path", cfg.Storage.Path)
}

// Validate checks the configuration for values that can never work
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.InternalPlayer.Command) == "" {
		errs = append(errs, errors.New("internal_player.command must not be empty"))
	}

	names := make([]string, 0, len(c.Players))
	for name := range c.Players {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		id, known := domain.ParsePlayerID(name)
		switch {
		case !known:
			errs = append(errs, unknownPlayerError("players."+name, name))
		case id == domain.PlayerDefault:
			errs = append(errs, errors.New("players.default: the default player cannot be overridden"))
		case strings.TrimSpace(c.Players[name].Command) == "":
			errs = append(errs, fmt.Errorf("players.%s: command must not be empty", name))
		}
	}

	return errors.Join(errs...)
}

// Overrides converts the players section into resolver overrides
func (c *Config) Overrides() map[domain.PlayerID]player.Override {
	out := make(map[domain.PlayerID]player.Override, len(c.Players))
	for name, p := range c.Players {
		id, known := domain.ParsePlayerID(name)
		if !known || id == domain.PlayerDefault {
			continue
		}
		out[id] = player.Override{
			Command:   p.Command,
			Args:      p.Args,
			StartFlag: p.StartFlag,
		}
	}
	return out
}

// unknownPlayerError reports an unrecognized player identifier with a hint
func unknownPlayerError(field, name string) error {
	candidates := make([]string, 0, len(domain.KnownPlayers()))
	for _, id := range domain.KnownPlayers() {
		candidates = append(candidates, string(id))
	}
	if hint, ok := search.Closest(name, candidates); ok {
		return fmt.Errorf("%s: unknown player %q (did you mean %q?)", field, name, hint)
	}
	return fmt.Errorf("%s: unknown player %q (known: %s)", field, name, strings.Join(candidates, ", "))
}
