package summary

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/costbasis"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// RecentCount is how many of the newest transactions are quoted in the prompt.
const RecentCount = 5

// BuildPrompt renders the portfolio snapshot and recent activity into the
// request sent to the model.
func BuildPrompt(txs []model.Transaction, stats model.PortfolioStats) string {
	var b strings.Builder

	b.WriteString("Here is the user's trading data:\n")
	fmt.Fprintf(&b, "- Current USD Inventory: %s\n", formatMoney(stats.CurrentInventoryUSD, money.USD))
	fmt.Fprintf(&b, "- Weighted Average Cost per USD: %s BDT\n", fixed(stats.WeightedAvgCost))
	fmt.Fprintf(&b, "- Total Realized Profit: %s\n", formatMoney(stats.TotalRealizedProfit, money.BDT))
	fmt.Fprintf(&b, "- Total Transaction Count: %d\n", len(txs))

	fmt.Fprintf(&b, "\nRecent Transactions (Last %d):\n", RecentCount)
	recent := costbasis.Newest(txs, RecentCount)
	if len(recent) == 0 {
		b.WriteString("- none\n")
	}
	for _, tx := range recent {
		profit := "N/A"
		if tx.Profit != nil {
			profit = fixed(*tx.Profit)
		}
		fmt.Fprintf(&b, "- %s $%s @ %s (Profit: %s)\n",
			tx.Type,
			decimal.NewFromFloat(tx.AmountUSD).String(),
			decimal.NewFromFloat(tx.Rate).String(),
			profit,
		)
	}

	b.WriteString("\nPlease provide a brief, encouraging analysis in **Bengali** (বাংলা) explaining their profit ")
	b.WriteString("situation and a quick tip for future trades based on the average cost. Keep it under 100 words.\n")

	return b.String()
}

// formatMoney rounds to the currency's minor unit and renders it with the
// currency symbol and thousands separators.
func formatMoney(amount float64, code string) string {
	fraction := int32(money.GetCurrency(code).Fraction)
	minor := decimal.NewFromFloat(amount).Shift(fraction).Round(0).IntPart()
	return money.New(minor, code).Display()
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
