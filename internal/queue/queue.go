// Package queue holds the transient list of items waiting for playback.
package queue

import "github.com/VuDung/serenity/internal/domain"

// PlaybackQueue is an ordered FIFO of media items.
// Items are referenced, not copied. An item ID appears at most once.
//
// There is no internal locking: all calls are expected from a single actor
// (the UI event stream).
type PlaybackQueue struct {
	items []*domain.MediaItem
}

// New creates an empty queue
func New() *PlaybackQueue {
	return &PlaybackQueue{}
}

// Enqueue appends item at the tail. It returns false, leaving the queue
// unchanged, for a nil item or one whose ID is already queued.
func (q *PlaybackQueue) Enqueue(item *domain.MediaItem) bool {
	if item == nil || q.contains(item.ID) {
		return false
	}
	q.items = append(q.items, item)
	return true
}

// DequeueHead removes and returns the head item
func (q *PlaybackQueue) DequeueHead() (*domain.MediaItem, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	head := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return head, true
}

// Clear empties the queue
func (q *PlaybackQueue) Clear() {
	q.items = nil
}

func (q *PlaybackQueue) IsEmpty() bool { return len(q.items) == 0 }

func (q *PlaybackQueue) Len() int { return len(q.items) }

// Items returns the queued items head first. The slice is a copy; the
// items are the queued pointers.
func (q *PlaybackQueue) Items() []*domain.MediaItem {
	out := make([]*domain.MediaItem, len(q.items))
	copy(out, q.items)
	return out
}

// IDs returns the queued item IDs head first
func (q *PlaybackQueue) IDs() []string {
	ids := make([]string, len(q.items))
	for i, item := range q.items {
		ids[i] = item.ID
	}
	return ids
}

func (q *PlaybackQueue) contains(id string) bool {
	for _, item := range q.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

var _ domain.Queue = (*PlaybackQueue)(nil)
