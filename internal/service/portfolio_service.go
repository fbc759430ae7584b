package service

import (
	"context"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/costbasis"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/repository"
)

// PortfolioService derives portfolio figures from the stored history.
// Nothing is cached: every call recomputes from the full history.
type PortfolioService struct {
	transactionRepo *repository.TransactionRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(transactionRepo *repository.TransactionRepository) *PortfolioService {
	return &PortfolioService{
		transactionRepo: transactionRepo,
	}
}

// GetStats returns the current inventory, average cost, and realized totals.
func (s *PortfolioService) GetStats(ctx context.Context) (model.PortfolioStats, error) {
	transactions, err := s.transactionRepo.GetTransactions(ctx)
	if err != nil {
		return model.PortfolioStats{}, err
	}
	return costbasis.Compute(transactions), nil
}

// GetProfitChart returns the realized profit of the last limit sales, oldest
// first, with a running cumulative total over the whole history.
func (s *PortfolioService) GetProfitChart(ctx context.Context, limit int) ([]model.ProfitPoint, error) {
	transactions, err := s.transactionRepo.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return costbasis.LastSales(transactions, limit), nil
}
