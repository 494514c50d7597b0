package domain

// Store handles the local catalog (BoltDB + memory).
type Store interface {
	// === Items ===
	GetItem(id string) (*MediaItem, bool)
	SaveItem(item *MediaItem) error
	ListItems() ([]*MediaItem, error)
	DeleteItem(id string) error

	// === Queue snapshot (ordered item IDs, head first) ===
	GetQueue() ([]string, bool)
	SaveQueue(ids []string) error

	Close() error
}
