package model

import "time"

// PortfolioStats is the projection of the whole transaction history. It is
// recomputed from scratch on every read and never patched incrementally.
type PortfolioStats struct {
	CurrentInventoryUSD float64 `json:"currentInventoryUSD"`
	WeightedAvgCost     float64 `json:"weightedAvgCost"`
	TotalRealizedProfit float64 `json:"totalRealizedProfit"`
	TotalInvested       float64 `json:"totalInvested"`
	TotalSales          float64 `json:"totalSales"`
	TransactionCount    int     `json:"transactionCount"`
}

// ProfitPoint is the realized result of one SELL, used by the profit chart.
type ProfitPoint struct {
	Date             time.Time `json:"date"`
	TransactionID    string    `json:"transactionId"`
	AmountUSD        float64   `json:"amountUSD"`
	Rate             float64   `json:"rate"`
	CostBasis        float64   `json:"costBasis"`
	Profit           float64   `json:"profit"`
	CumulativeProfit float64   `json:"cumulativeProfit"`
}

// Summary is the narrative analysis of the portfolio. Available is false when
// the text is a fallback message rather than generated prose.
type Summary struct {
	Text      string `json:"text"`
	Available bool   `json:"available"`
}
