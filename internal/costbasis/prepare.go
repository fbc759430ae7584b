package costbasis

import (
	"time"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
)

// Intent is a requested trade that has not been accepted yet.
type Intent struct {
	ID        string
	Date      time.Time
	Type      model.TransactionType
	AmountUSD float64
	Rate      float64
}

// Prepare checks an intent against the current portfolio snapshot and, when
// accepted, returns the fully populated transaction.
//
// A SELL records its profit and cost basis from the snapshot as given. The
// snapshot is not recomputed here, so a trade dated before existing
// transactions still uses the latest average cost.
//
// Every rejection wraps apperrors.ErrValidation.
func Prepare(intent Intent, snapshot model.PortfolioStats) (model.Transaction, error) {
	if !intent.Type.Valid() {
		return model.Transaction{}, apperrors.ErrInvalidTransactionType
	}
	if !(intent.AmountUSD > 0) {
		return model.Transaction{}, apperrors.ErrNonPositiveAmount
	}
	if !(intent.Rate > 0) {
		return model.Transaction{}, apperrors.ErrNonPositiveRate
	}
	if intent.Type == model.TransactionTypeSell && intent.AmountUSD > snapshot.CurrentInventoryUSD {
		return model.Transaction{}, apperrors.ErrInsufficientInventory
	}

	tx := model.Transaction{
		ID:         intent.ID,
		Date:       intent.Date,
		Type:       intent.Type,
		AmountUSD:  intent.AmountUSD,
		Rate:       intent.Rate,
		TotalLocal: intent.AmountUSD * intent.Rate,
	}

	if tx.IsSell() {
		costBasis := snapshot.WeightedAvgCost
		profit := (intent.Rate - costBasis) * intent.AmountUSD
		tx.Profit = &profit
		tx.CostBasisAtTime = &costBasis
	}

	return tx, nil
}
