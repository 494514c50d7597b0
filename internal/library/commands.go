package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/VuDung/serenity/internal/domain"
)

// Add stores a new item or replaces an existing one with the same ID.
// An item without an ID gets a generated one.
func (s *Service) Add(item *domain.MediaItem) error {
	if item == nil {
		return errors.New("add item: nil item")
	}
	if strings.TrimSpace(item.Title) == "" {
		return errors.New("add item: title is required")
	}
	if strings.TrimSpace(item.URL) == "" {
		return errors.New("add item: url is required")
	}
	if item.ResumeOffset < 0 || (item.Duration > 0 && item.ResumeOffset > item.Duration) {
		return fmt.Errorf("add item: resume offset %s outside runtime %s", item.ResumeOffset, item.Duration)
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	if err := s.store.SaveItem(item); err != nil {
		s.logger.Error("failed to save item", "itemID", item.ID, "error", err)
		return err
	}
	s.logger.Info("saved item", "itemID", item.ID, "title", item.Title)
	return nil
}

// Remove deletes an item from the catalog
func (s *Service) Remove(id string) error {
	if err := s.store.DeleteItem(id); err != nil {
		return err
	}
	s.logger.Info("removed item", "itemID", id)
	return nil
}

// MarkWatched marks an item as fully watched and clears its resume point
func (s *Service) MarkWatched(id string) error {
	return s.update(id, func(item *domain.MediaItem) {
		item.IsPlayed = true
		item.ResumeOffset = 0
	})
}

// MarkUnwatched marks an item as unwatched and clears its resume point
func (s *Service) MarkUnwatched(id string) error {
	return s.update(id, func(item *domain.MediaItem) {
		item.IsPlayed = false
		item.ResumeOffset = 0
	})
}

// RecordResume stores the position playback stopped at.
// A completed item is marked watched.
func (s *Service) RecordResume(_ context.Context, id string, offset time.Duration, completed bool) error {
	return s.update(id, func(item *domain.MediaItem) {
		item.ResumeOffset = offset
		if completed {
			item.IsPlayed = true
			item.ResumeOffset = 0
		}
	})
}

func (s *Service) update(id string, fn func(*domain.MediaItem)) error {
	item, ok := s.store.GetItem(id)
	if !ok {
		return fmt.Errorf("item %q: %w", id, domain.ErrItemNotFound)
	}
	fn(item)
	if err := s.store.SaveItem(item); err != nil {
		s.logger.Error("failed to update item", "itemID", id, "error", err)
		return err
	}
	s.logger.Debug("updated item", "itemID", id, "played", item.IsPlayed, "offset", item.ResumeOffset)
	return nil
}
