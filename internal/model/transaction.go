package model

import "time"

// TransactionType is the direction of a currency trade.
type TransactionType string

const (
	// TransactionTypeBuy acquires foreign currency (USD) paying local currency.
	TransactionTypeBuy TransactionType = "BUY"
	// TransactionTypeSell disposes of foreign currency for local currency.
	TransactionTypeSell TransactionType = "SELL"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeBuy || t == TransactionTypeSell
}

// Transaction is a single BUY or SELL of foreign currency. Transactions are
// immutable once created and are only ever appended.
//
// Profit and CostBasisAtTime are only set on SELL records and hold the values
// computed from the portfolio snapshot at submission time.
type Transaction struct {
	ID              string          `json:"id"`
	Date            time.Time       `json:"date"`
	Type            TransactionType `json:"type"`
	AmountUSD       float64         `json:"amountUSD"`
	Rate            float64         `json:"rate"`
	TotalLocal      float64         `json:"totalLocal"`
	Profit          *float64        `json:"profit,omitempty"`
	CostBasisAtTime *float64        `json:"costBasisAtTime,omitempty"`
	SyncStatus      SyncStatus      `json:"syncStatus,omitempty"`
	SyncAttempts    int             `json:"syncAttempts,omitempty"`
	LastSyncError   string          `json:"lastSyncError,omitempty"`
	CreatedAt       time.Time       `json:"createdAt,omitempty"`
}

// IsSell reports whether the transaction is a SELL.
func (t Transaction) IsSell() bool {
	return t.Type == TransactionTypeSell
}

// SubmitResult is returned after a transaction has been accepted. The
// transaction is always kept locally; Warning is set when the remote store
// could not be reached.
type SubmitResult struct {
	Transaction Transaction `json:"transaction"`
	Warning     string      `json:"warning,omitempty"`
}
