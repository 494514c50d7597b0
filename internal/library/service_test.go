package library

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/queue"
	"github.com/VuDung/serenity/internal/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := store.NewCatalogStore("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s, nil)
}

func seed(t *testing.T, svc *Service) {
	t.Helper()
	items := []*domain.MediaItem{
		{ID: "42", Title: "Heat", URL: "http://server/heat.mkv", Duration: 170 * time.Minute, ResumeOffset: 25 * time.Minute},
		{ID: "7", Title: "Ronin", URL: "http://server/ronin.mkv", Duration: 2 * time.Hour},
		{
			ID: "e1", Title: "Pilot", URL: "http://server/pilot.mkv", Duration: 45 * time.Minute,
			Type: domain.MediaTypeEpisode, ShowTitle: "Alias", SeasonNum: 1, EpisodeNum: 1,
		},
	}
	for _, item := range items {
		require.NoError(t, svc.Add(item))
	}
}

func TestAddValidates(t *testing.T) {
	svc := newService(t)

	assert.Error(t, svc.Add(nil))
	assert.Error(t, svc.Add(&domain.MediaItem{URL: "http://x"}))
	assert.Error(t, svc.Add(&domain.MediaItem{Title: "No URL"}))
	assert.Error(t, svc.Add(&domain.MediaItem{
		Title: "Bad", URL: "http://x", Duration: time.Minute, ResumeOffset: time.Hour,
	}))
}

func TestAddGeneratesID(t *testing.T) {
	svc := newService(t)
	item := &domain.MediaItem{Title: "Ransom", URL: "http://server/ransom.mkv"}

	require.NoError(t, svc.Add(item))
	require.NotEmpty(t, item.ID)

	got, err := svc.Get(item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ransom", got.Title)
}

func TestGetAndRemove(t *testing.T) {
	svc := newService(t)
	seed(t, svc)

	_, err := svc.Get("nope")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	require.NoError(t, svc.Remove("7"))
	_, err = svc.Get("7")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.ErrorIs(t, svc.Remove("7"), domain.ErrItemNotFound)

	items, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFind(t *testing.T) {
	svc := newService(t)
	seed(t, svc)

	tests := []struct {
		ref  string
		want string
	}{
		{"42", "42"},
		{"ronin", "7"},
		{"Alias S01E01 - Pilot", "e1"},
		{"pilot", "e1"},
		{"hea", "42"},
		{"ronim", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			item, err := svc.Find(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, item.ID)
		})
	}
}

func TestFindNotFound(t *testing.T) {
	svc := newService(t)
	seed(t, svc)

	_, err := svc.Find("zzzzzzzz")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = svc.Find("  ")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestSearch(t *testing.T) {
	svc := newService(t)
	seed(t, svc)

	results, err := svc.Search("r")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "7", results[0].ID)
}

func TestWatchState(t *testing.T) {
	svc := newService(t)
	seed(t, svc)

	require.NoError(t, svc.MarkWatched("42"))
	item, err := svc.Get("42")
	require.NoError(t, err)
	assert.True(t, item.IsPlayed)
	assert.Zero(t, item.ResumeOffset)
	assert.Equal(t, domain.WatchStatusWatched, item.WatchStatus())

	require.NoError(t, svc.MarkUnwatched("42"))
	item, err = svc.Get("42")
	require.NoError(t, err)
	assert.False(t, item.IsPlayed)
	assert.Equal(t, domain.WatchStatusUnwatched, item.WatchStatus())

	assert.ErrorIs(t, svc.MarkWatched("nope"), domain.ErrItemNotFound)
}

func TestRecordResume(t *testing.T) {
	svc := newService(t)
	seed(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.RecordResume(ctx, "7", 40*time.Minute, false))
	item, err := svc.Get("7")
	require.NoError(t, err)
	assert.Equal(t, 40*time.Minute, item.ResumeOffset)
	assert.True(t, item.IsPartiallyWatched())

	require.NoError(t, svc.RecordResume(ctx, "7", 2*time.Hour, true))
	item, err = svc.Get("7")
	require.NoError(t, err)
	assert.Zero(t, item.ResumeOffset)
	assert.True(t, item.IsPlayed)

	assert.ErrorIs(t, svc.RecordResume(ctx, "nope", time.Minute, false), domain.ErrItemNotFound)
}

func TestQueueSnapshotAndRestore(t *testing.T) {
	svc := newService(t)
	seed(t, svc)

	q := queue.New()
	n, err := svc.RestoreQueue(q)
	require.NoError(t, err)
	assert.Zero(t, n)

	for _, id := range []string{"7", "42", "e1"} {
		item, err := svc.Get(id)
		require.NoError(t, err)
		q.Enqueue(item)
	}
	require.NoError(t, svc.SnapshotQueue(q))
	require.NoError(t, svc.Remove("42"))

	restored := queue.New()
	n, err = svc.RestoreQueue(restored)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"7", "e1"}, restored.IDs())
}
