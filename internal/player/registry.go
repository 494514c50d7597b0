package player

import (
	"fmt"
	"strings"
	"time"

	"github.com/VuDung/serenity/internal/domain"
)

// launchPath defines a single way to launch a player
type launchPath struct {
	path         string   // Command path: "/usr/bin/mpv", "vlc", or "open-a:AppName"
	openFlags    []string // For "open-a:" paths only - flags for macOS open command (e.g., ["-n"])
	argSeparator string   // Separator before player args (e.g., "--" for iina-cli)
}

// playerConfig defines platform-specific launch configurations for a player
type playerConfig struct {
	offsetFlag string                  // Resume offset flag (e.g., "--start=")
	titleFlag  string                  // Media title flag, empty if unsupported
	platforms  map[string][]launchPath // Platform -> launch paths to try in order
}

// players registry - single source of truth for external player configuration.
// The default player is not listed; it maps to the system opener.
var players = map[domain.PlayerID]playerConfig{
	domain.PlayerMPV: {
		offsetFlag: "--start=",
		titleFlag:  "--force-media-title=",
		platforms: map[string][]launchPath{
			"darwin":  {{path: "mpv"}},
			"linux":   {{path: "mpv"}},
			"windows": {{path: "mpv"}},
		},
	},
	domain.PlayerVLC: {
		offsetFlag: "--start-time=",
		titleFlag:  "--meta-title=",
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "vlc"},
				{path: "open-a:VLC"},
			},
			"linux":   {{path: "vlc"}},
			"windows": {{path: "vlc"}},
		},
	},
	domain.PlayerIINA: {
		offsetFlag: "--mpv-start=",
		titleFlag:  "--mpv-force-media-title=",
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "iina-cli", argSeparator: "--"},
				{path: "open-a:IINA", openFlags: []string{"-n"}},
			},
		},
	},
	domain.PlayerCelluloid: {
		offsetFlag: "--mpv-start=",
		titleFlag:  "--mpv-force-media-title=",
		platforms: map[string][]launchPath{
			"linux": {{path: "celluloid"}},
		},
	},
	domain.PlayerHaruna: {
		offsetFlag: "--mpv-start=",
		platforms: map[string][]launchPath{
			"linux": {{path: "haruna"}},
		},
	},
	domain.PlayerPotPlayer: {
		offsetFlag: "/seek=",
		titleFlag:  "/title=",
		platforms: map[string][]launchPath{
			"windows": {{path: "PotPlayerMini64.exe"}, {path: "PotPlayerMini.exe"}},
		},
	},
}

// Override replaces the registry entry for a player with a user command
type Override struct {
	Command   string
	Args      []string
	StartFlag string // e.g., "--start=" or "-ss " (trailing space = separate arg)
}

// offsetArgs renders the start offset for a flag.
// Flags ending in a space take the value as a separate argument.
func offsetArgs(flag string, offset time.Duration) []string {
	if offset <= 0 || flag == "" {
		return nil
	}
	secs := fmt.Sprintf("%.0f", offset.Seconds())
	if strings.HasSuffix(flag, " ") {
		return []string{strings.TrimSuffix(flag, " "), secs}
	}
	return []string{flag + secs}
}

// titleArgs renders the media title flag
func titleArgs(flag, title string) []string {
	if flag == "" || title == "" {
		return nil
	}
	if strings.HasSuffix(flag, " ") {
		return []string{strings.TrimSuffix(flag, " "), title}
	}
	return []string{flag + title}
}

// playerArgs builds the argument list (without the URL) for a registry player
func playerArgs(cfg playerConfig, h domain.PlayerHandle) []string {
	args := titleArgs(cfg.titleFlag, h.Title)
	return append(args, offsetArgs(cfg.offsetFlag, h.StartOffset)...)
}
