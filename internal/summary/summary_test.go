package summary_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/summary"
)

type fakeGenerator struct {
	text   string
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

var day = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func history() []model.Transaction {
	profit := 750.0
	costBasis := 115.0
	txs := []model.Transaction{
		{ID: "b1", Date: day, Type: model.TransactionTypeBuy, AmountUSD: 100, Rate: 110, TotalLocal: 11000},
		{ID: "b2", Date: day.AddDate(0, 0, 1), Type: model.TransactionTypeBuy, AmountUSD: 100, Rate: 120, TotalLocal: 12000},
		{ID: "s1", Date: day.AddDate(0, 0, 2), Type: model.TransactionTypeSell, AmountUSD: 50, Rate: 130, TotalLocal: 6500, Profit: &profit, CostBasisAtTime: &costBasis},
	}
	for i := 0; i < 4; i++ {
		txs = append(txs, model.Transaction{ID: "old", Date: day.AddDate(-1, 0, i), Type: model.TransactionTypeBuy, AmountUSD: 1, Rate: 99, TotalLocal: 99})
	}
	return txs
}

var stats = model.PortfolioStats{
	CurrentInventoryUSD: 1150,
	WeightedAvgCost:     115,
	TotalRealizedProfit: 1234567.891,
	TransactionCount:    7,
}

func TestBuildPrompt(t *testing.T) {
	prompt := summary.BuildPrompt(history(), stats)

	for _, want := range []string{
		"Current USD Inventory: $1,150.00",
		"Weighted Average Cost per USD: 115.00 BDT",
		"Total Realized Profit: ৳1,234,567.89",
		"Total Transaction Count: 7",
		"- SELL $50 @ 130 (Profit: 750.00)",
		"- BUY $100 @ 120 (Profit: N/A)",
		"Bengali",
		"under 100 words",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q\n%s", want, prompt)
		}
	}

	if got := strings.Count(prompt, "\n- BUY $1 @ 99"); got != 2 {
		t.Errorf("Expected only the 5 newest transactions, found %d old entries", got)
	}

	if strings.Index(prompt, "- SELL $50") > strings.Index(prompt, "- BUY $100 @ 120") {
		t.Error("Expected newest transaction first")
	}
}

func TestBuildPrompt_EmptyHistory(t *testing.T) {
	prompt := summary.BuildPrompt(nil, model.PortfolioStats{})

	if !strings.Contains(prompt, "Current USD Inventory: $0.00") || !strings.Contains(prompt, "- none") {
		t.Errorf("Unexpected prompt for empty history:\n%s", prompt)
	}
}

func TestSummarizer_Analyze(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		generator     summary.Generator
		wantText      string
		wantAvailable bool
	}{
		{
			name:          "returns generated text",
			generator:     &fakeGenerator{text: "  আপনার লাভ ভালো।  "},
			wantText:      "আপনার লাভ ভালো।",
			wantAvailable: true,
		},
		{
			name:      "missing generator uses credential fallback",
			generator: nil,
			wantText:  summary.MissingCredentialText,
		},
		{
			name:      "missing credential error uses credential fallback",
			generator: &fakeGenerator{err: apperrors.ErrMissingCredential},
			wantText:  summary.MissingCredentialText,
		},
		{
			name:      "generation error uses failure fallback",
			generator: &fakeGenerator{err: errors.New("quota exceeded")},
			wantText:  summary.FailureText,
		},
		{
			name:      "empty text uses empty fallback",
			generator: &fakeGenerator{text: "   "},
			wantText:  summary.EmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *summary.Summarizer
			if tt.generator == nil {
				s = summary.NewSummarizer(nil)
			} else {
				s = summary.NewSummarizer(tt.generator)
			}

			got := s.Analyze(ctx, history(), stats)
			if got.Text != tt.wantText {
				t.Errorf("Expected text %q, got %q", tt.wantText, got.Text)
			}
			if got.Available != tt.wantAvailable {
				t.Errorf("Expected available=%v, got %v", tt.wantAvailable, got.Available)
			}
		})
	}

	t.Run("sends the built prompt", func(t *testing.T) {
		gen := &fakeGenerator{text: "ok"}
		summary.NewSummarizer(gen).Analyze(ctx, history(), stats)

		if gen.prompt != summary.BuildPrompt(history(), stats) {
			t.Error("Expected generator to receive the built prompt")
		}
	})
}

func TestNewGeminiClient_MissingKey(t *testing.T) {
	_, err := summary.NewGeminiClient(context.Background(), "", "gemini-2.5-flash")
	if !errors.Is(err, apperrors.ErrMissingCredential) {
		t.Errorf("Expected ErrMissingCredential, got %v", err)
	}
}
