package domain

import (
	"fmt"
	"time"
)

// MediaType distinguishes content types
type MediaType int

const (
	MediaTypeMovie MediaType = iota
	MediaTypeEpisode
)

// String returns the lowercase type name used in storage and listings
func (t MediaType) String() string {
	switch t {
	case MediaTypeMovie:
		return "movie"
	case MediaTypeEpisode:
		return "episode"
	default:
		return "unknown"
	}
}

// ParseMediaType converts a type name back to a MediaType, defaulting to movie
func ParseMediaType(s string) MediaType {
	if s == "episode" {
		return MediaTypeEpisode
	}
	return MediaTypeMovie
}

// MediaItem represents a playable video (movie or episode).
// Items are owned by the caller and passed around by pointer; the dispatcher
// and the queue mutate ResumeOffset in place.
type MediaItem struct {
	ID           string        // Unique source identifier
	Title        string        // Display title
	URL          string        // Playable location handed to players
	Duration     time.Duration // Total runtime
	ResumeOffset time.Duration // Last known position, 0 = from start
	IsPlayed     bool          // Whether item is marked as watched
	Type         MediaType     // Movie or Episode

	// Episode-specific fields (empty for movies)
	ShowTitle  string
	SeasonNum  int
	EpisodeNum int
}

// IsPartiallyWatched reports whether the item has a resume point strictly
// inside its runtime.
func (m *MediaItem) IsPartiallyWatched() bool {
	if m == nil {
		return false
	}
	return m.ResumeOffset > 0 && m.ResumeOffset < m.Duration
}

// WatchStatus returns the watch status of the media item
func (m MediaItem) WatchStatus() WatchStatus {
	if m.IsPlayed {
		return WatchStatusWatched
	}
	if m.ResumeOffset > 0 {
		return WatchStatusInProgress
	}
	return WatchStatusUnwatched
}

// DisplayTitle returns the title shown to the user and passed to players
func (m MediaItem) DisplayTitle() string {
	if m.Type == MediaTypeEpisode && m.ShowTitle != "" {
		return fmt.Sprintf("%s %s - %s", m.ShowTitle, m.EpisodeCode(), m.Title)
	}
	return m.Title
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func (m MediaItem) EpisodeCode() string {
	if m.Type != MediaTypeEpisode {
		return ""
	}
	return fmt.Sprintf("S%02dE%02d", m.SeasonNum, m.EpisodeNum)
}

// FormattedDuration returns the duration in a human-readable format
func (m MediaItem) FormattedDuration() string {
	h := int(m.Duration.Hours())
	mins := int(m.Duration.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatOffset formats a playback position as H:MM:SS, or M:SS under an hour.
func FormatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int(d.Seconds())
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

// WatchStatus represents the viewing state of media
type WatchStatus int

const (
	WatchStatusUnwatched WatchStatus = iota
	WatchStatusInProgress
	WatchStatusWatched
)

// String returns a human-readable representation of the watch status
func (w WatchStatus) String() string {
	switch w {
	case WatchStatusUnwatched:
		return "Unwatched"
	case WatchStatusInProgress:
		return "In Progress"
	case WatchStatusWatched:
		return "Watched"
	default:
		return "Unknown"
	}
}
