package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/repository"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple buy with defaults
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized sell
//	tx := testutil.NewTransaction().
//	    Sell().
//	    WithAmount(50).
//	    WithRate(130).
//	    WithProfit(750, 115).
//	    Build(t, db)
type TransactionBuilder struct {
	ID              string
	Date            time.Time
	Type            model.TransactionType
	AmountUSD       float64
	Rate            float64
	Profit          *float64
	CostBasisAtTime *float64
	SyncStatus      model.SyncStatus
}

// NewTransaction creates a TransactionBuilder for a 100 USD buy at 110.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:         MakeID(),
		Date:       time.Now().UTC(),
		Type:       model.TransactionTypeBuy,
		AmountUSD:  100,
		Rate:       110,
		SyncStatus: model.SyncStatusSynced,
	}
}

// WithID sets a custom ID
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets the transaction date
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// Sell turns the transaction into a SELL.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionTypeSell
	return b
}

// WithAmount sets the USD amount
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.AmountUSD = amount
	return b
}

// WithRate sets the BDT per USD rate
func (b *TransactionBuilder) WithRate(rate float64) *TransactionBuilder {
	b.Rate = rate
	return b
}

// WithProfit stores a realized profit and the cost basis it was computed from.
func (b *TransactionBuilder) WithProfit(profit, costBasis float64) *TransactionBuilder {
	b.Profit = &profit
	b.CostBasisAtTime = &costBasis
	return b
}

// WithSyncStatus sets the remote store sync state
func (b *TransactionBuilder) WithSyncStatus(status model.SyncStatus) *TransactionBuilder {
	b.SyncStatus = status
	return b
}

// Model returns the transaction without persisting it.
func (b *TransactionBuilder) Model() model.Transaction {
	return model.Transaction{
		ID:              b.ID,
		Date:            b.Date,
		Type:            b.Type,
		AmountUSD:       b.AmountUSD,
		Rate:            b.Rate,
		TotalLocal:      b.AmountUSD * b.Rate,
		Profit:          b.Profit,
		CostBasisAtTime: b.CostBasisAtTime,
		SyncStatus:      b.SyncStatus,
	}
}

// Build creates the transaction in the database
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := b.Model()
	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), &tx); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	return tx
}

// CreateBuy creates a buy transaction on the given day offset from a fixed base date.
//
// Example usage:
//
//	testutil.CreateBuy(t, db, 0, 100, 110)
//	testutil.CreateBuy(t, db, 1, 100, 120)
func CreateBuy(t *testing.T, db *sql.DB, day int, amount, rate float64) model.Transaction {
	t.Helper()
	return NewTransaction().WithDate(BaseDate.AddDate(0, 0, day)).WithAmount(amount).WithRate(rate).Build(t, db)
}

// CreateSell creates a sell transaction on the given day offset from a fixed base date.
// Stored profit is left empty since the engine always recomputes it.
func CreateSell(t *testing.T, db *sql.DB, day int, amount, rate float64) model.Transaction {
	t.Helper()
	return NewTransaction().Sell().WithDate(BaseDate.AddDate(0, 0, day)).WithAmount(amount).WithRate(rate).Build(t, db)
}
