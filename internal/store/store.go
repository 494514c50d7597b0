package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/VuDung/serenity/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketItems = []byte("items")
	bucketQueue = []byte("queue")
)

const queueKey = "ids"

// itemRecord is the stored form of a MediaItem
type itemRecord struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	DurationMs     int64  `json:"duration_ms"`
	ResumeOffsetMs int64  `json:"resume_offset_ms"`
	IsPlayed       bool   `json:"played"`
	Type           string `json:"type"`
	ShowTitle      string `json:"show_title,omitempty"`
	SeasonNum      int    `json:"season,omitempty"`
	EpisodeNum     int    `json:"episode,omitempty"`
}

func toRecord(m *domain.MediaItem) itemRecord {
	return itemRecord{
		ID:             m.ID,
		Title:          m.Title,
		URL:            m.URL,
		DurationMs:     m.Duration.Milliseconds(),
		ResumeOffsetMs: m.ResumeOffset.Milliseconds(),
		IsPlayed:       m.IsPlayed,
		Type:           m.Type.String(),
		ShowTitle:      m.ShowTitle,
		SeasonNum:      m.SeasonNum,
		EpisodeNum:     m.EpisodeNum,
	}
}

func (r itemRecord) item() *domain.MediaItem {
	return &domain.MediaItem{
		ID:           r.ID,
		Title:        r.Title,
		URL:          r.URL,
		Duration:     time.Duration(r.DurationMs) * time.Millisecond,
		ResumeOffset: time.Duration(r.ResumeOffsetMs) * time.Millisecond,
		IsPlayed:     r.IsPlayed,
		Type:         domain.ParseMediaType(r.Type),
		ShowTitle:    r.ShowTitle,
		SeasonNum:    r.SeasonNum,
		EpisodeNum:   r.EpisodeNum,
	}
}

// CatalogStore implements domain.Store using BoltDB.
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewCatalogStore opens serenity.db under dir. An empty dir gives a
// memory-only store.
func NewCatalogStore(dir string) (*CatalogStore, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &CatalogStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "serenity.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketItems, bucketQueue} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &CatalogStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucket).Put([]byte(key), data)
		})
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.cache[string(bucket)+":"+key] = data
	s.mu.Unlock()
	return nil
}

func (s *CatalogStore) delete(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}

// values returns every raw value in bucket
func (s *CatalogStore) values(bucket []byte) ([][]byte, error) {
	if s.db == nil {
		prefix := string(bucket) + ":"
		s.mu.RLock()
		defer s.mu.RUnlock()

		var out [][]byte
		for k, v := range s.cache {
			if strings.HasPrefix(k, prefix) {
				out = append(out, v)
			}
		}
		return out, nil
	}

	var out [][]byte
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(_, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			out = append(out, data)
			return nil
		})
	})
	return out, err
}

// === Items ===

func (s *CatalogStore) GetItem(id string) (*domain.MediaItem, bool) {
	var rec itemRecord
	if !s.get(bucketItems, id, &rec) {
		return nil, false
	}
	return rec.item(), true
}

func (s *CatalogStore) SaveItem(item *domain.MediaItem) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("save item: missing id")
	}
	return s.set(bucketItems, item.ID, toRecord(item))
}

// ListItems returns every stored item ordered by display title
func (s *CatalogStore) ListItems() ([]*domain.MediaItem, error) {
	raw, err := s.values(bucketItems)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.MediaItem, 0, len(raw))
	for _, data := range raw {
		var rec itemRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decoding item: %w", err)
		}
		items = append(items, rec.item())
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].DisplayTitle(), items[j].DisplayTitle()
		if a != b {
			return a < b
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *CatalogStore) DeleteItem(id string) error {
	if _, ok := s.GetItem(id); !ok {
		return fmt.Errorf("item %q: %w", id, domain.ErrItemNotFound)
	}
	return s.delete(bucketItems, id)
}

// === Queue snapshot ===

func (s *CatalogStore) GetQueue() ([]string, bool) {
	var ids []string
	ok := s.get(bucketQueue, queueKey, &ids)
	return ids, ok
}

func (s *CatalogStore) SaveQueue(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.set(bucketQueue, queueKey, ids)
}

var _ domain.Store = (*CatalogStore)(nil)
