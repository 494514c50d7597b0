package domain

import (
	"strings"
	"time"
)

// PlayerID identifies a player application selectable in preferences.
type PlayerID string

const (
	PlayerDefault   PlayerID = "default" // system default handler
	PlayerMPV       PlayerID = "mpv"
	PlayerVLC       PlayerID = "vlc"
	PlayerIINA      PlayerID = "iina"
	PlayerCelluloid PlayerID = "celluloid"
	PlayerHaruna    PlayerID = "haruna"
	PlayerPotPlayer PlayerID = "potplayer"
)

// KnownPlayers lists every selectable player in display order
func KnownPlayers() []PlayerID {
	return []PlayerID{
		PlayerDefault,
		PlayerMPV,
		PlayerVLC,
		PlayerIINA,
		PlayerCelluloid,
		PlayerHaruna,
		PlayerPotPlayer,
	}
}

// ParsePlayerID normalizes an identifier from preferences.
// Unrecognized identifiers are returned as-is with known=false;
// an empty identifier means the default player.
func ParsePlayerID(s string) (id PlayerID, known bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" {
		return PlayerDefault, true
	}
	for _, p := range KnownPlayers() {
		if string(p) == norm {
			return p, true
		}
	}
	return PlayerID(norm), false
}

// PlayerHandle is a launchable reference to a player for one item.
// Resolution is lazy: an unknown or missing player still gets a handle and
// the failure surfaces at launch.
type PlayerHandle struct {
	Player      PlayerID
	Known       bool
	Target      string        // URL handed to the player
	Title       string        // media title shown by the player
	StartOffset time.Duration // 0 = from start
}
