// Package costbasis implements weighted-average-cost (moving average)
// inventory accounting for foreign currency trades.
//
// Every function in this package is pure: it reads its input, never mutates
// it, and performs no I/O, so it is safe to call concurrently.
package costbasis

import (
	"slices"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
)

// Sorted returns a chronological copy of txs. Transactions sharing a
// timestamp keep their relative input order.
func Sorted(txs []model.Transaction) []model.Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// Newest returns up to n transactions, most recent first. Among equal
// timestamps the later input comes first. A non-positive n returns all.
func Newest(txs []model.Transaction, n int) []model.Transaction {
	newest := Sorted(txs)
	slices.Reverse(newest)
	if n > 0 && len(newest) > n {
		newest = newest[:n]
	}
	if newest == nil {
		return []model.Transaction{}
	}
	return newest
}

// ledger is the running state of the weighted-average walk.
type ledger struct {
	inventory           float64
	totalCost           float64
	totalRealizedProfit float64
	totalSales          float64
}

// averageCost is the cost per held unit. A non-positive inventory has an
// average cost of 0 so an oversold history never divides by zero.
func (l *ledger) averageCost() float64 {
	if l.inventory > 0 {
		return l.totalCost / l.inventory
	}
	return 0
}

func (l *ledger) buy(tx model.Transaction) {
	l.totalCost += tx.AmountUSD * tx.Rate
	l.inventory += tx.AmountUSD
}

// sell removes tx.AmountUSD from inventory at the current average cost and
// returns that cost basis together with the realized profit.
func (l *ledger) sell(tx model.Transaction) (costBasis, profit float64) {
	costBasis = l.averageCost()
	costOfGoodsSold := tx.AmountUSD * costBasis

	l.inventory -= tx.AmountUSD
	l.totalCost -= costOfGoodsSold

	profit = (tx.Rate - costBasis) * tx.AmountUSD
	l.totalRealizedProfit += profit
	l.totalSales += tx.TotalLocal
	return costBasis, profit
}

// Compute projects the full transaction history onto portfolio statistics.
// Input order does not matter: transactions are processed by date. Realized
// profit is recomputed from each sale's rate and the running average cost;
// the profit stored on SELL records is ignored.
func Compute(txs []model.Transaction) model.PortfolioStats {
	var l ledger
	for _, tx := range Sorted(txs) {
		switch tx.Type {
		case model.TransactionTypeBuy:
			l.buy(tx)
		case model.TransactionTypeSell:
			l.sell(tx)
		}
	}

	return model.PortfolioStats{
		CurrentInventoryUSD: l.inventory,
		WeightedAvgCost:     l.averageCost(),
		TotalRealizedProfit: l.totalRealizedProfit,
		TotalInvested:       l.totalCost,
		TotalSales:          l.totalSales,
		TransactionCount:    len(txs),
	}
}

// Replay walks the history like Compute and returns one ProfitPoint per SELL
// in chronological order, carrying the running realized profit.
func Replay(txs []model.Transaction) []model.ProfitPoint {
	var l ledger
	points := []model.ProfitPoint{}
	for _, tx := range Sorted(txs) {
		switch tx.Type {
		case model.TransactionTypeBuy:
			l.buy(tx)
		case model.TransactionTypeSell:
			costBasis, profit := l.sell(tx)
			points = append(points, model.ProfitPoint{
				Date:             tx.Date,
				TransactionID:    tx.ID,
				AmountUSD:        tx.AmountUSD,
				Rate:             tx.Rate,
				CostBasis:        costBasis,
				Profit:           profit,
				CumulativeProfit: l.totalRealizedProfit,
			})
		}
	}
	return points
}

// LastSales returns the final n points of Replay. n <= 0 returns every point.
func LastSales(txs []model.Transaction, n int) []model.ProfitPoint {
	points := Replay(txs)
	if n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}
	return points
}
