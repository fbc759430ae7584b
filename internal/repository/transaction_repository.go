package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Transactions are append-only: there is no update of trade fields and no delete.
// Only the sync bookkeeping columns change after insert.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	id, date, type, amount_usd, rate, total_local, profit, cost_basis_at_time,
	sync_status, sync_attempts, last_sync_error, created_at
`

// GetTransactions retrieves every transaction sorted by date, then insertion order.
// Returns an empty (non-nil) slice when the table is empty.
func (r *TransactionRepository) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM "transaction" ORDER BY date ASC, seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransactionsBySyncStatus retrieves transactions in any of the given sync
// states, oldest insert first.
func (r *TransactionRepository) GetTransactionsBySyncStatus(ctx context.Context, statuses ...model.SyncStatus) ([]model.Transaction, error) {
	if len(statuses) == 0 {
		return []model.Transaction{}, nil
	}

	placeholders := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, status := range statuses {
		placeholders[i] = "?"
		args[i] = string(status)
	}

	//nolint:gosec // G202: only placeholders are concatenated
	query := `SELECT ` + transactionColumns + ` FROM "transaction"
		WHERE sync_status IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	if transactionID == "" {
		return model.Transaction{}, apperrors.ErrEmptyID
	}

	query := `SELECT ` + transactionColumns + ` FROM "transaction" WHERE id = ?`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// InsertTransaction appends a transaction. A transaction with an existing ID
// fails with apperrors.ErrDuplicateEntry.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	inserted, err := r.insert(ctx, t, false)
	if err != nil {
		return err
	}
	if !inserted {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicateEntry, t.ID)
	}
	return nil
}

// InsertTransactionIfAbsent appends a transaction unless its ID is already
// stored. It reports whether a row was written.
func (r *TransactionRepository) InsertTransactionIfAbsent(ctx context.Context, t *model.Transaction) (bool, error) {
	return r.insert(ctx, t, true)
}

func (r *TransactionRepository) insert(ctx context.Context, t *model.Transaction, ignoreDuplicate bool) (bool, error) {
	if t.SyncStatus == "" {
		t.SyncStatus = model.SyncStatusPending
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	verb := "INSERT"
	if ignoreDuplicate {
		verb = "INSERT OR IGNORE"
	}

	// A row inserted in_flight is already claimed by the inserting caller.
	var claimedAt sql.NullString
	if t.SyncStatus == model.SyncStatusInFlight {
		claimedAt = sql.NullString{String: FormatTime(time.Now().UTC()), Valid: true}
	}

	query := verb + ` INTO "transaction" (` + transactionColumns + `, sync_claimed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		t.ID,
		FormatTime(t.Date),
		string(t.Type),
		t.AmountUSD,
		t.Rate,
		t.TotalLocal,
		nullFloat(t.Profit),
		nullFloat(t.CostBasisAtTime),
		string(t.SyncStatus),
		t.SyncAttempts,
		nullString(t.LastSyncError),
		FormatTime(t.CreatedAt),
		claimedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// ClaimForSync marks a transaction in_flight so that only one caller pushes it
// to the remote store. Pending and failed rows can be claimed, and so can
// in_flight rows whose claim is older than staleBefore. The update is a single
// conditional statement, so concurrent callers cannot both win. It reports
// whether this caller holds the claim.
func (r *TransactionRepository) ClaimForSync(ctx context.Context, transactionID string, staleBefore time.Time) (bool, error) {
	query := `
		UPDATE "transaction"
		SET sync_status = ?, sync_claimed_at = ?
		WHERE id = ?
		  AND (
			sync_status IN (?, ?)
			OR (sync_status = ? AND (sync_claimed_at IS NULL OR sync_claimed_at < ?))
		  )
	`

	result, err := r.db.ExecContext(ctx, query,
		string(model.SyncStatusInFlight),
		FormatTime(time.Now().UTC()),
		transactionID,
		string(model.SyncStatusPending),
		string(model.SyncStatusFailed),
		string(model.SyncStatusInFlight),
		FormatTime(staleBefore),
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim transaction for sync: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// UpdateSyncStatus records the outcome of one push attempt to the remote store
// and releases any claim on the row. syncErr is stored for failed attempts and
// cleared otherwise.
func (r *TransactionRepository) UpdateSyncStatus(ctx context.Context, transactionID string, status model.SyncStatus, syncErr string) error {
	query := `
		UPDATE "transaction"
		SET sync_status = ?, sync_attempts = sync_attempts + 1, last_sync_error = ?, last_sync_at = ?,
			sync_claimed_at = NULL
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		string(status),
		nullString(syncErr),
		FormatTime(time.Now().UTC()),
		transactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sync status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// CountBySyncStatus returns the number of transactions in each sync state.
func (r *TransactionRepository) CountBySyncStatus(ctx context.Context) (model.SyncStatusCounts, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sync_status, COUNT(*) FROM "transaction" GROUP BY sync_status`)
	if err != nil {
		return model.SyncStatusCounts{}, fmt.Errorf("failed to count sync status: %w", err)
	}
	defer rows.Close()

	var counts model.SyncStatusCounts
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return model.SyncStatusCounts{}, fmt.Errorf("failed to scan sync status counts: %w", err)
		}
		switch model.SyncStatus(status) {
		case model.SyncStatusPending:
			counts.Pending = n
		case model.SyncStatusInFlight:
			counts.InFlight = n
		case model.SyncStatusSynced:
			counts.Synced = n
		case model.SyncStatusFailed:
			counts.Failed = n
		}
	}

	if err := rows.Err(); err != nil {
		return model.SyncStatusCounts{}, fmt.Errorf("error iterating sync status counts: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}
	return transactions, nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var dateStr, typeStr, statusStr, createdAtStr string
	var profit, costBasis sql.NullFloat64
	var lastSyncError sql.NullString

	err := row.Scan(
		&t.ID,
		&dateStr,
		&typeStr,
		&t.AmountUSD,
		&t.Rate,
		&t.TotalLocal,
		&profit,
		&costBasis,
		&statusStr,
		&t.SyncAttempts,
		&lastSyncError,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return t, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return t, err
	}

	t.Type = model.TransactionType(typeStr)
	t.SyncStatus = model.SyncStatus(statusStr)
	if profit.Valid {
		t.Profit = &profit.Float64
	}
	if costBasis.Valid {
		t.CostBasisAtTime = &costBasis.Float64
	}
	if lastSyncError.Valid {
		t.LastSyncError = lastSyncError.String
	}

	return t, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
