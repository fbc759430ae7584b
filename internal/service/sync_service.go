package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/remotestore"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/validation"
	"golang.org/x/sync/errgroup"
)

// Warnings attached to results when the remote store misbehaves.
const (
	WarnRemoteSaveFailed  = "Transaction saved locally but could not be saved to the remote store. It will be retried automatically."
	WarnRemoteUnreadable  = "Remote store returned an unreadable response. No history was imported."
	WarnRemoteUnreachable = "Remote store could not be reached. No history was imported."
)

// ClaimTimeout is how long an in_flight claim blocks other pushers. A claim
// older than this was abandoned (for example by a crash mid-push) and may be
// taken over.
const ClaimTimeout = 10 * time.Minute

// SyncService keeps the local store and the remote record store in step.
// Local transactions are written first and pushed afterwards; a push that
// fails leaves the record marked failed so Push can retry it later.
//
// A record is claimed (in_flight) for the duration of a push, so the inline
// push after a submission, the scheduled retry and a manual retry never send
// the same record twice.
type SyncService struct {
	transactionRepo *repository.TransactionRepository
	remote          remotestore.Store
	concurrency     int
	now             func() time.Time
}

// NewSyncService creates a new SyncService. concurrency bounds the number of
// simultaneous pushes during a retry pass.
func NewSyncService(
	transactionRepo *repository.TransactionRepository,
	remote remotestore.Store,
	concurrency int,
) *SyncService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &SyncService{
		transactionRepo: transactionRepo,
		remote:          remote,
		concurrency:     concurrency,
		now:             time.Now,
	}
}

// PushOne appends tx to the remote store and records the outcome on the local
// row. The caller must hold the claim on tx, which TransactionService does by
// inserting it in_flight. tx is updated in place with the new sync state. It
// reports whether the remote store accepted the record.
func (s *SyncService) PushOne(ctx context.Context, tx *model.Transaction) bool {
	ok, err := s.pushOne(ctx, tx)
	if err != nil {
		logger.L.Error("failed to record sync status", "id", tx.ID, "error", err)
	}
	return ok
}

func (s *SyncService) pushOne(ctx context.Context, tx *model.Transaction) (bool, error) {
	ok := s.remote.Append(ctx, *tx)

	status, syncErr := model.SyncStatusSynced, ""
	if !ok {
		status, syncErr = model.SyncStatusFailed, apperrors.ErrPersistence.Error()
	}

	if err := s.transactionRepo.UpdateSyncStatus(ctx, tx.ID, status, syncErr); err != nil {
		return ok, err
	}

	tx.SyncStatus = status
	tx.SyncAttempts++
	tx.LastSyncError = syncErr
	return ok, nil
}

// Push retries every pending or failed transaction, plus in_flight ones whose
// claim has expired. Records another caller is pushing right now are skipped.
func (s *SyncService) Push(ctx context.Context) (model.PushResult, error) {
	unsynced, err := s.transactionRepo.GetTransactionsBySyncStatus(ctx,
		model.SyncStatusPending, model.SyncStatusFailed, model.SyncStatusInFlight)
	if err != nil {
		return model.PushResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSync, err)
	}

	staleBefore := s.now().Add(-ClaimTimeout)
	var synced, failed, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range unsynced {
		tx := unsynced[i]
		g.Go(func() error {
			claimed, err := s.transactionRepo.ClaimForSync(gctx, tx.ID, staleBefore)
			if err != nil {
				return err
			}
			if !claimed {
				skipped.Add(1)
				return nil
			}

			ok, err := s.pushOne(gctx, &tx)
			if err != nil {
				return err
			}
			if ok {
				synced.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.PushResult{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSync, err)
	}

	result := model.PushResult{
		Synced:  int(synced.Load()),
		Failed:  int(failed.Load()),
		Skipped: int(skipped.Load()),
	}
	result.Attempted = result.Synced + result.Failed
	if len(unsynced) > 0 {
		logger.L.Info("remote store push finished",
			"attempted", result.Attempted, "synced", result.Synced, "failed", result.Failed, "skipped", result.Skipped)
	}
	return result, nil
}

// Pull imports the remote history. Records already stored locally are left
// untouched, so pulling is idempotent. An unreachable store or an unreadable
// reply imports nothing and is reported as a warning, not an error.
func (s *SyncService) Pull(ctx context.Context) (model.PullResult, error) {
	remote, err := s.remote.List(ctx)
	switch {
	case errors.Is(err, apperrors.ErrMalformedResponse):
		logger.L.Warn("remote history unreadable, treating as empty", "error", err)
		return model.PullResult{Warning: WarnRemoteUnreadable}, nil
	case err != nil:
		logger.L.Warn("remote history unavailable", "error", err)
		return model.PullResult{Warning: WarnRemoteUnreachable}, nil
	}

	result := model.PullResult{Fetched: len(remote)}
	for i := range remote {
		tx := remote[i]
		if err := validation.ValidateRecord(tx); err != nil {
			logger.L.Warn("skipping invalid remote record", "id", tx.ID, "error", err)
			result.Skipped++
			continue
		}

		tx.SyncStatus = model.SyncStatusSynced
		inserted, err := s.transactionRepo.InsertTransactionIfAbsent(ctx, &tx)
		if err != nil {
			return result, fmt.Errorf("%w: %w", apperrors.ErrFailedToSync, err)
		}
		if inserted {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	logger.L.Info("remote history imported", "fetched", result.Fetched, "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// InitialPull imports the remote history once at startup so a fresh install
// shows the existing trades. It never fails: problems are logged and the
// server starts with whatever is stored locally.
func (s *SyncService) InitialPull(ctx context.Context) model.PullResult {
	result, err := s.Pull(ctx)
	if err != nil {
		logger.L.Error("startup pull failed", "error", err)
	}
	return result
}

// Status returns the number of local transactions in each sync state.
func (s *SyncService) Status(ctx context.Context) (model.SyncStatusCounts, error) {
	counts, err := s.transactionRepo.CountBySyncStatus(ctx)
	if err != nil {
		return model.SyncStatusCounts{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToSync, err)
	}
	return counts, nil
}
