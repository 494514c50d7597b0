package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VuDung/serenity/internal/domain"
)

func heat() *domain.MediaItem {
	return &domain.MediaItem{
		ID:           "42",
		Title:        "Heat",
		URL:          "http://server/heat.mkv",
		Duration:     170 * time.Minute,
		ResumeOffset: 25 * time.Minute,
	}
}

func episode() *domain.MediaItem {
	return &domain.MediaItem{
		ID:         "e1",
		Title:      "Pilot",
		URL:        "http://server/pilot.mkv",
		Duration:   45 * time.Minute,
		IsPlayed:   true,
		Type:       domain.MediaTypeEpisode,
		ShowTitle:  "Alias",
		SeasonNum:  1,
		EpisodeNum: 1,
	}
}

// stores runs fn against a memory-only and an on-disk store
func stores(t *testing.T, fn func(t *testing.T, s *CatalogStore)) {
	t.Run("memory", func(t *testing.T) {
		s, err := NewCatalogStore("")
		require.NoError(t, err)
		defer s.Close()
		fn(t, s)
	})
	t.Run("bolt", func(t *testing.T) {
		s, err := NewCatalogStore(t.TempDir())
		require.NoError(t, err)
		defer s.Close()
		fn(t, s)
	})
}

func TestItemRoundTrip(t *testing.T) {
	stores(t, func(t *testing.T, s *CatalogStore) {
		require.NoError(t, s.SaveItem(heat()))
		require.NoError(t, s.SaveItem(episode()))

		got, ok := s.GetItem("42")
		require.True(t, ok)
		assert.Equal(t, heat(), got)

		got, ok = s.GetItem("e1")
		require.True(t, ok)
		assert.Equal(t, episode(), got)

		_, ok = s.GetItem("missing")
		assert.False(t, ok)
	})
}

func TestListItemsSortedByTitle(t *testing.T) {
	stores(t, func(t *testing.T, s *CatalogStore) {
		require.NoError(t, s.SaveItem(heat()))
		require.NoError(t, s.SaveItem(episode()))

		items, err := s.ListItems()
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "e1", items[0].ID) // "Alias S01E01 - Pilot"
		assert.Equal(t, "42", items[1].ID)
	})
}

func TestSaveItemOverwrites(t *testing.T) {
	stores(t, func(t *testing.T, s *CatalogStore) {
		item := heat()
		require.NoError(t, s.SaveItem(item))

		item.ResumeOffset = time.Hour
		require.NoError(t, s.SaveItem(item))

		got, ok := s.GetItem("42")
		require.True(t, ok)
		assert.Equal(t, time.Hour, got.ResumeOffset)
	})
}

func TestSaveItemRequiresID(t *testing.T) {
	stores(t, func(t *testing.T, s *CatalogStore) {
		assert.Error(t, s.SaveItem(&domain.MediaItem{Title: "No ID"}))
		assert.Error(t, s.SaveItem(nil))
	})
}

func TestDeleteItem(t *testing.T) {
	stores(t, func(t *testing.T, s *CatalogStore) {
		require.NoError(t, s.SaveItem(heat()))
		require.NoError(t, s.DeleteItem("42"))

		_, ok := s.GetItem("42")
		assert.False(t, ok)

		assert.ErrorIs(t, s.DeleteItem("42"), domain.ErrItemNotFound)

		items, err := s.ListItems()
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestQueueSnapshot(t *testing.T) {
	stores(t, func(t *testing.T, s *CatalogStore) {
		_, ok := s.GetQueue()
		assert.False(t, ok)

		require.NoError(t, s.SaveQueue([]string{"b", "a"}))
		ids, ok := s.GetQueue()
		require.True(t, ok)
		assert.Equal(t, []string{"b", "a"}, ids)

		require.NoError(t, s.SaveQueue(nil))
		ids, ok = s.GetQueue()
		require.True(t, ok)
		assert.Empty(t, ids)
	})
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewCatalogStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveItem(heat()))
	require.NoError(t, s.SaveQueue([]string{"42"}))
	require.NoError(t, s.Close())

	s, err = NewCatalogStore(dir)
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.GetItem("42")
	require.True(t, ok)
	assert.Equal(t, 25*time.Minute, got.ResumeOffset)

	ids, ok := s.GetQueue()
	require.True(t, ok)
	assert.Equal(t, []string{"42"}, ids)
}
