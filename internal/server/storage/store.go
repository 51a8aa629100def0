package storage

// Store is the full persistence surface a driver must provide
type Store interface {
	UserStorage
	InventoryStorage

	// Close releases the underlying database
	Close() error
}
