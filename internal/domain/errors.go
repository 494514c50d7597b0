package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested media item does not exist in the catalog
	ErrItemNotFound = errors.New("media item not found")

	// ErrPlayerNotFound indicates the target player could not be located at launch time
	ErrPlayerNotFound = errors.New("player not found")

	// ErrQueueEmpty indicates a queue operation was requested with nothing queued
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrContinuationUnsupported indicates queue continuation was requested for
	// an external player while the preference is disabled
	ErrContinuationUnsupported = errors.New("queue continuation not supported for external players")

	// ErrDispatchFailed indicates both the selected and the default player failed to launch
	ErrDispatchFailed = errors.New("playback dispatch failed")
)
