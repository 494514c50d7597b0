package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/playback"
	"github.com/VuDung/serenity/internal/tui/styles"
)

const (
	defaultWidth  = 80
	durationWidth = 8
	progressWidth = 10
	offsetWidth   = 8
)

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// formatItemRow renders one catalog line: status, title, runtime and progress
func formatItemRow(item *domain.MediaItem, width int) string {
	status := styles.RenderWatchStatus(item.WatchStatus())

	// status, duration and progress columns plus separators
	titleWidth := max(width-2-1-durationWidth-1-progressWidth-1-offsetWidth, 10)
	title := styles.Pad(styles.Truncate(item.DisplayTitle(), titleWidth), titleWidth)

	length := ""
	if item.Duration > 0 {
		length = item.FormattedDuration()
	}
	length = styles.DimStyle.Render(styles.Pad(length, durationWidth))

	progress := ""
	if item.IsPartiallyWatched() {
		progress = styles.RenderProgressBar(progressPercent(item), progressWidth) +
			" " + styles.DimStyle.Render(domain.FormatOffset(item.ResumeOffset))
	}

	return fmt.Sprintf("%s %s %s %s", status, title, length, progress)
}

func progressPercent(item *domain.MediaItem) float64 {
	if item.Duration <= 0 {
		return 0
	}
	return float64(item.ResumeOffset) / float64(item.Duration) * 100
}

// describeResult summarizes a finished dispatch for the terminal.
// Internal playback and abandoned requests print nothing.
func describeResult(res playback.Result, item *domain.MediaItem) string {
	if res.Route != playback.RouteExternal {
		return ""
	}

	name := "item"
	if item != nil {
		name = item.DisplayTitle()
	}

	switch res.State {
	case playback.StateSucceeded:
		return styles.SuccessStyle.Render(fmt.Sprintf("Opened %s in %s", name, res.Player))
	case playback.StateFellBackToDefault:
		return styles.AccentStyle.Render(fmt.Sprintf("Selected player not found, opened %s with the default player", name))
	default:
		return ""
	}
}
