package store

// Storages aggregates every repository the service layer consumes.
type Storages struct {
	ItemRepository    ItemRepository
	SessionRepository SessionRepository
}

// NewStorages wires the PostgreSQL-backed repositories over a shared
// connection.
func NewStorages(db *DB) *Storages {
	return &Storages{
		ItemRepository:    NewItemRepository(db, db.logger),
		SessionRepository: NewSessionRepository(db, db.logger),
	}
}
