// Package remotestore talks to the external record store that mirrors the
// transaction history outside this service.
package remotestore

import (
	"context"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
)

// Store is the remote record store contract.
//
// List returns every record the store holds, in no guaranteed order.
// Append reports whether the store accepted the record; failures are logged,
// never returned, and the caller keeps its local copy either way.
type Store interface {
	List(ctx context.Context) ([]model.Transaction, error)
	Append(ctx context.Context, tx model.Transaction) bool
}

// NoopStore is used when no remote store is configured. It holds nothing and
// accepts every append, so the service runs on its local store alone.
type NoopStore struct{}

// List always returns an empty history.
func (NoopStore) List(_ context.Context) ([]model.Transaction, error) {
	return []model.Transaction{}, nil
}

// Append always succeeds.
func (NoopStore) Append(_ context.Context, _ model.Transaction) bool {
	return true
}
