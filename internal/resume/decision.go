// Package resume decides whether playback continues from the stored offset.
package resume

import "github.com/VuDung/serenity/internal/domain"

// Decision is the outcome of Decide
type Decision int

const (
	// PlayImmediately starts from the beginning without asking
	PlayImmediately Decision = iota
	// Prompt asks the user to choose between Resume and Restart
	Prompt
	// Resume plays from the item's current offset, whatever it is
	Resume
)

// String returns the decision name for logging
func (d Decision) String() string {
	switch d {
	case PlayImmediately:
		return "play_immediately"
	case Prompt:
		return "prompt"
	case Resume:
		return "resume"
	default:
		return "unknown"
	}
}

// Decide picks how an external launch treats the stored resume offset.
//
// externalPlayerSelected is true when a named external player is configured,
// false when the selection is the "default" handler. Queued playback and
// default-handler playback never resume.
func Decide(item *domain.MediaItem, autoResume, externalPlayerSelected, queueNonEmpty bool) Decision {
	switch {
	case queueNonEmpty || !externalPlayerSelected:
		return PlayImmediately
	case item.IsPartiallyWatched() && !autoResume:
		return Prompt
	default:
		return Resume
	}
}
