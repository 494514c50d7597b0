package library

import (
	"fmt"
	"strings"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/search"
)

// Get returns the item with the given ID
func (s *Service) Get(id string) (*domain.MediaItem, error) {
	item, ok := s.store.GetItem(id)
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, domain.ErrItemNotFound)
	}
	return item, nil
}

// List returns every item in the catalog
func (s *Service) List() ([]*domain.MediaItem, error) {
	return s.store.ListItems()
}

// Find resolves a user reference: an exact ID, then an exact title, then
// the best fuzzy title match.
func (s *Service) Find(ref string) (*domain.MediaItem, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty reference: %w", domain.ErrItemNotFound)
	}
	if item, ok := s.store.GetItem(ref); ok {
		return item, nil
	}

	items, err := s.store.ListItems()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if strings.EqualFold(item.Title, ref) || strings.EqualFold(item.DisplayTitle(), ref) {
			return item, nil
		}
	}

	matches := search.Rank(ref, displayTitles(items))
	if len(matches) == 0 {
		return nil, fmt.Errorf("%q: %w", ref, domain.ErrItemNotFound)
	}

	item := items[matches[0].Index]
	s.logger.Debug("resolved reference by fuzzy match", "ref", ref, "itemID", item.ID, "score", matches[0].Score)
	return item, nil
}

// Search returns the items whose titles match query, best first
func (s *Service) Search(query string) ([]*domain.MediaItem, error) {
	items, err := s.store.ListItems()
	if err != nil {
		return nil, err
	}

	matches := search.Rank(query, displayTitles(items))
	results := make([]*domain.MediaItem, len(matches))
	for i, m := range matches {
		results[i] = items[m.Index]
	}
	return results, nil
}

func displayTitles(items []*domain.MediaItem) []string {
	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.DisplayTitle()
	}
	return titles
}
