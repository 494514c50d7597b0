package domain

import (
	"context"
	"time"
)

// Preference keys read by the dispatcher
const (
	PrefExternalPlayer           = "external_player"
	PrefExternalPlayerContinuous = "external_player_continuous_playback"
	PrefExternalPlayerFilter     = "serenity_external_player_filter"
)

// PlaybackConfig is a read-only snapshot of the preferences relevant to dispatch.
type PlaybackConfig struct {
	ExternalPlayerEnabled    bool
	QueueContinuationEnabled bool
	SelectedExternalPlayer   string
}

// DefaultPlaybackConfig returns the values used when no preference is stored
func DefaultPlaybackConfig() PlaybackConfig {
	return PlaybackConfig{
		ExternalPlayerEnabled:    false,
		QueueContinuationEnabled: false,
		SelectedExternalPlayer:   string(PlayerDefault),
	}
}

// Queue is the view of the playback queue handed to the internal player.
type Queue interface {
	Items() []*MediaItem
	DequeueHead() (*MediaItem, bool)
	IsEmpty() bool
}

// PlaybackResult is reported by the internal player for every item it played.
type PlaybackResult struct {
	Item      *MediaItem
	Position  time.Duration // Last observed position
	Completed bool          // Played to the end
}

// InternalRequest starts a continuous session on the internal player.
// The player drains Queue head first; OnResult may be nil.
type InternalRequest struct {
	Queue      Queue
	AutoResume bool
	OnResult   func(PlaybackResult)
}

// InternalPlayer is the queue-aware built-in playback surface.
type InternalPlayer interface {
	Play(ctx context.Context, req InternalRequest) error
}

// Choice is the answer to a resume prompt
type Choice int

const (
	ChoiceDismissed Choice = iota
	ChoiceResume
	ChoiceRestart
)

// String returns the choice name for logging
func (c Choice) String() string {
	switch c {
	case ChoiceResume:
		return "resume"
	case ChoiceRestart:
		return "restart"
	default:
		return "dismissed"
	}
}

// Prompt describes a binary question shown to the user
type Prompt struct {
	Title   string
	Message string
	Confirm string // label for ChoiceResume
	Deny    string // label for ChoiceRestart
}

// Prompter asks the user to choose between resuming and restarting.
// Ask blocks until the user answers or dismisses the prompt.
type Prompter interface {
	Ask(ctx context.Context, p Prompt) (Choice, error)
}

// NoticeKind identifies a user-visible notice
type NoticeKind int

const (
	NoticeQueueCleared NoticeKind = iota
	NoticeQueueEmpty
	NoticeContinuationUnsupported
	NoticeLaunchFailed
)

// String returns the notice kind name for logging
func (k NoticeKind) String() string {
	switch k {
	case NoticeQueueCleared:
		return "queue_cleared"
	case NoticeQueueEmpty:
		return "queue_empty"
	case NoticeContinuationUnsupported:
		return "continuation_unsupported"
	case NoticeLaunchFailed:
		return "launch_failed"
	default:
		return "unknown"
	}
}

// Notice is a short fire-and-forget message for the user
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier shows notices to the user
type Notifier interface {
	Notify(n Notice)
}
