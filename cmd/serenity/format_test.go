package main

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/playback"
)

func TestReported(t *testing.T) {
	dispatchErr := errors.Join(domain.ErrDispatchFailed, fmt.Errorf("vlc: %w", domain.ErrPlayerNotFound))

	assert.NoError(t, reported(nil))
	assert.NoError(t, reported(domain.ErrQueueEmpty))
	assert.NoError(t, reported(domain.ErrContinuationUnsupported))
	assert.ErrorIs(t, reported(dispatchErr), domain.ErrDispatchFailed)

	other := errors.New("resume prompt: boom")
	assert.Equal(t, other, reported(other))
}

func TestFormatItemRow(t *testing.T) {
	item := &domain.MediaItem{
		ID:           "ronin",
		Title:        "Ronin",
		Duration:     2 * time.Hour,
		ResumeOffset: 25*time.Minute + 30*time.Second,
	}

	row := formatItemRow(item, 80)
	assert.Contains(t, row, "Ronin")
	assert.Contains(t, row, "2h 0m")
	assert.Contains(t, row, "25:30")
	assert.LessOrEqual(t, lipgloss.Width(row), 80)
}

func TestFormatItemRowTruncatesLongTitles(t *testing.T) {
	item := &domain.MediaItem{Title: "An Extremely Long Title That Will Not Fit In A Narrow Terminal Window At All"}

	row := formatItemRow(item, 40)
	assert.Contains(t, row, "...")
	assert.NotContains(t, row, "Window")
}

func TestFormatItemRowWatchedHasNoProgress(t *testing.T) {
	item := &domain.MediaItem{Title: "Heat", Duration: time.Hour, IsPlayed: true}

	row := formatItemRow(item, 80)
	assert.NotContains(t, row, "█")
	assert.NotContains(t, row, "░")
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0.0, progressPercent(&domain.MediaItem{ResumeOffset: time.Minute}))
	assert.InDelta(t, 25.0, progressPercent(&domain.MediaItem{ResumeOffset: 15 * time.Minute, Duration: time.Hour}), 0.001)
}

func TestDescribeResult(t *testing.T) {
	item := &domain.MediaItem{Title: "Heat"}

	tests := []struct {
		name string
		res  playback.Result
		want string
	}{
		{
			name: "external success",
			res:  playback.Result{State: playback.StateSucceeded, Route: playback.RouteExternal, Player: domain.PlayerVLC},
			want: "Opened Heat in vlc",
		},
		{
			name: "fell back",
			res:  playback.Result{State: playback.StateFellBackToDefault, Route: playback.RouteExternal, Player: domain.PlayerDefault, FellBack: true},
			want: "opened Heat with the default player",
		},
		{
			name: "internal",
			res:  playback.Result{State: playback.StateSucceeded, Route: playback.RouteInternal},
		},
		{
			name: "abandoned",
			res:  playback.Result{State: playback.StateAbandoned, Route: playback.RouteExternal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeResult(tt.res, item)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestPlayerNames(t *testing.T) {
	names := playerNames()
	for _, p := range domain.KnownPlayers() {
		assert.Contains(t, names, string(p))
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "item", plural(1, "item"))
	assert.Equal(t, "items", plural(0, "item"))
	assert.Equal(t, "items", plural(3, "item"))
}
