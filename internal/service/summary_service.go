package service

import (
	"context"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/costbasis"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/summary"
)

// SummaryService produces the narrative analysis of the portfolio.
type SummaryService struct {
	transactionRepo *repository.TransactionRepository
	summarizer      *summary.Summarizer
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(transactionRepo *repository.TransactionRepository, summarizer *summary.Summarizer) *SummaryService {
	return &SummaryService{
		transactionRepo: transactionRepo,
		summarizer:      summarizer,
	}
}

// GetSummary loads the history and asks the summarizer for an analysis.
// Only a failure to read the local store is returned as an error; summary
// problems degrade to fallback text.
func (s *SummaryService) GetSummary(ctx context.Context) (model.Summary, error) {
	transactions, err := s.transactionRepo.GetTransactions(ctx)
	if err != nil {
		return model.Summary{}, err
	}
	return s.summarizer.Analyze(ctx, transactions, costbasis.Compute(transactions)), nil
}
