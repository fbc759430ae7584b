package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/costbasis"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/validation"
)

// TransactionService handles transaction submission and history reads.
type TransactionService struct {
	// mu makes snapshot-then-append atomic across concurrent submissions.
	mu              sync.Mutex
	transactionRepo *repository.TransactionRepository
	syncService     *SyncService
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	syncService *SyncService,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		syncService:     syncService,
		now:             time.Now,
	}
}

// GetTransactions returns the full history, most recent first.
func (s *TransactionService) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return costbasis.Newest(transactions, 0), nil
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, transactionID)
}

// CreateTransaction validates a trade against the current portfolio and, when
// accepted, stores it locally and pushes it to the remote store.
//
// Rejections wrap apperrors.ErrValidation and leave both stores untouched.
// A failed push is not an error: the transaction stays stored, is marked for
// retry, and the result carries a warning.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.SubmitResult, error) {
	date := s.now().UTC()
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := validation.ParseTime(req.Date)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	intent := costbasis.Intent{
		ID:        uuid.New().String(),
		Date:      date,
		Type:      validation.NormalizeTransactionType(req.Type),
		AmountUSD: req.AmountUSD,
		Rate:      req.Rate,
	}

	transaction, err := s.appendLocal(ctx, intent)
	if err != nil {
		return nil, err
	}

	result := &model.SubmitResult{}
	if !s.syncService.PushOne(ctx, &transaction) {
		logger.L.Warn("transaction kept locally, remote save failed", "id", transaction.ID)
		result.Warning = WarnRemoteSaveFailed
	}
	result.Transaction = transaction

	return result, nil
}

// appendLocal computes the snapshot, validates the intent against it, and
// stores the accepted transaction already claimed for the push that follows.
func (s *TransactionService) appendLocal(ctx context.Context, intent costbasis.Intent) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.transactionRepo.GetTransactions(ctx)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to load history: %w", err)
	}

	transaction, err := costbasis.Prepare(intent, costbasis.Compute(history))
	if err != nil {
		return model.Transaction{}, err
	}

	transaction.SyncStatus = model.SyncStatusInFlight
	if err := s.transactionRepo.InsertTransaction(ctx, &transaction); err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}
