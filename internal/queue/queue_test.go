package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VuDung/serenity/internal/domain"
)

func TestFIFO(t *testing.T) {
	q := New()
	a := &domain.MediaItem{ID: "a"}
	b := &domain.MediaItem{ID: "b"}

	q.Enqueue(a)
	q.Enqueue(b)

	got, ok := q.DequeueHead()
	require.True(t, ok)
	assert.Same(t, a, got)

	got, ok = q.DequeueHead()
	require.True(t, ok)
	assert.Same(t, b, got)

	got, ok = q.DequeueHead()
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestClearIsIdempotent(t *testing.T) {
	q := New()
	q.Clear()
	assert.True(t, q.IsEmpty())

	q.Enqueue(&domain.MediaItem{ID: "a"})
	q.Clear()
	q.Clear()
	assert.True(t, q.IsEmpty())
	assert.Equal(t, 0, q.Len())
}

func TestEnqueueRejectsDuplicates(t *testing.T) {
	q := New()
	a := &domain.MediaItem{ID: "a"}

	assert.True(t, q.Enqueue(a))
	assert.False(t, q.Enqueue(a), "same pointer")
	assert.False(t, q.Enqueue(&domain.MediaItem{ID: "a"}), "same ID")
	assert.False(t, q.Enqueue(nil))
	assert.Equal(t, 1, q.Len())
}

func TestItemsReturnsCopy(t *testing.T) {
	q := New()
	a := &domain.MediaItem{ID: "a"}
	b := &domain.MediaItem{ID: "b"}
	q.Enqueue(a)
	q.Enqueue(b)

	items := q.Items()
	items[0] = nil

	assert.Equal(t, []string{"a", "b"}, q.IDs())
	head, _ := q.DequeueHead()
	assert.Same(t, a, head)
}

func TestItemsAreReferenced(t *testing.T) {
	q := New()
	a := &domain.MediaItem{ID: "a"}
	q.Enqueue(a)

	a.ResumeOffset = 42
	head, _ := q.DequeueHead()
	assert.EqualValues(t, 42, head.ResumeOffset)
}
