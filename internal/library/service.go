// Package library manages the local catalog of playable items and the
// persisted queue snapshot.
package library

import (
	"fmt"
	"log/slog"

	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/queue"
)

// Service orchestrates catalog operations on top of the store.
type Service struct {
	store  domain.Store
	logger *slog.Logger
}

// NewService creates a new library service.
func NewService(store domain.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// RestoreQueue refills q from the stored snapshot. Items that no longer
// exist in the catalog are skipped. It returns the number of items queued.
func (s *Service) RestoreQueue(q *queue.PlaybackQueue) (int, error) {
	ids, ok := s.store.GetQueue()
	if !ok {
		return 0, nil
	}

	restored := 0
	for _, id := range ids {
		item, found := s.store.GetItem(id)
		if !found {
			s.logger.Warn("dropping missing item from queue", "itemID", id)
			continue
		}
		if q.Enqueue(item) {
			restored++
		}
	}

	s.logger.Debug("restored queue", "stored", len(ids), "restored", restored)
	return restored, nil
}

// SnapshotQueue stores the current queue order
func (s *Service) SnapshotQueue(q *queue.PlaybackQueue) error {
	if err := s.store.SaveQueue(q.IDs()); err != nil {
		return fmt.Errorf("saving queue: %w", err)
	}
	return nil
}
