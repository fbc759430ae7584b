package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/remotestore"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/summary"
)

// BaseDate is the fixed reference day used by CreateBuy and CreateSell.
var BaseDate = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// NewTestSyncService wires a SyncService against db and the given remote store.
// A nil store behaves like an unconfigured remote.
func NewTestSyncService(t *testing.T, db *sql.DB, remote remotestore.Store) *service.SyncService {
	t.Helper()

	if remote == nil {
		remote = remotestore.NoopStore{}
	}
	return service.NewSyncService(repository.NewTransactionRepository(db), remote, 2)
}

// NewTestTransactionService wires a TransactionService against db and the given remote store.
func NewTestTransactionService(t *testing.T, db *sql.DB, remote remotestore.Store) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		NewTestSyncService(t, db, remote),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(repository.NewTransactionRepository(db))
}

// NewTestSummaryService wires a SummaryService whose summarizer uses generator.
// A nil generator behaves like a missing API key.
func NewTestSummaryService(t *testing.T, db *sql.DB, generator summary.Generator) *service.SummaryService {
	t.Helper()

	summarizer := summary.NewSummarizer(nil)
	if generator != nil {
		summarizer = summary.NewSummarizer(generator)
	}
	return service.NewSummaryService(repository.NewTransactionRepository(db), summarizer)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, map[string]bool{
		"remote_store": false,
		"summary":      false,
	})
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}
