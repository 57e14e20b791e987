// Package store defines the visitor record store contract and its backends.
//
// Mutations go through Execute, the single-writer-per-key discipline: read
// the latest record, validate, apply exactly one transition, write the full
// record back atomically. The memory backend holds its map lock across the
// callback, Postgres uses SELECT ... FOR UPDATE inside a transaction, and
// Redis uses WATCH/MULTI optimistic concurrency. Operations on different
// visitor ids are fully independent.
package store

import (
	"context"

	"gatehouse/internal/visitor/models"
	id "gatehouse/pkg/domain"
)

// VisitorStore is the persistence contract consumed by the tracker services.
// Backends return sentinel errors (pkg/platform/sentinel); services translate
// them into domain errors.
type VisitorStore interface {
	// Create persists a new record. Returns sentinel.ErrConflict if the id
	// already exists.
	Create(ctx context.Context, record *models.VisitorRecord) error

	// FindByID retrieves one record. Returns sentinel.ErrNotFound if absent.
	FindByID(ctx context.Context, visitorID id.VisitorID) (*models.VisitorRecord, error)

	// List returns all records. The derived views filter in memory; the
	// collection is small and correctness matters more than query cost.
	List(ctx context.Context) ([]*models.VisitorRecord, error)

	// Execute atomically validates and mutates a record under a per-key
	// write lock. If validate returns an error nothing is written and the
	// error is returned unchanged. Returns sentinel.ErrNotFound if absent.
	Execute(ctx context.Context, visitorID id.VisitorID, validate func(*models.VisitorRecord) error, mutate func(*models.VisitorRecord)) (*models.VisitorRecord, error)
}
