package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrDuplicateEntry indicates that a transaction with the same ID already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// ErrValidation is the root of every submission rejection. The specific causes
// below wrap it, so errors.Is(err, ErrValidation) classifies all of them.
var ErrValidation = errors.New("validation failed")

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrNonPositiveAmount indicates that the foreign amount is zero or negative.
	ErrNonPositiveAmount = wrapValidation("amount must be positive")

	// ErrNonPositiveRate indicates that the exchange rate is zero or negative.
	ErrNonPositiveRate = wrapValidation("rate must be positive")

	// ErrInsufficientInventory indicates that a sell exceeds the foreign
	// currency currently held.
	ErrInsufficientInventory = wrapValidation("not enough USD inventory to sell this amount")

	// ErrInvalidTransactionType indicates a type other than BUY or SELL.
	ErrInvalidTransactionType = wrapValidation("transaction type must be BUY or SELL")
)

// Collaborator errors describe failures of the remote record store and the
// narrative summary client. None of them are fatal.
var (
	// ErrPersistence indicates the remote store was unreachable or answered with a non-2xx status.
	ErrPersistence = errors.New("remote store persistence failed")

	// ErrMalformedResponse indicates the remote store body could not be parsed as transaction records.
	ErrMalformedResponse = errors.New("malformed response from remote store")

	// ErrSummaryUnavailable indicates the narrative summary could not be generated.
	ErrSummaryUnavailable = errors.New("summary unavailable")

	// ErrMissingCredential indicates no API key is configured for the summary client.
	ErrMissingCredential = errors.New("summary API key is not configured")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToCreateTransaction    = errors.New("failed to create transaction")
	ErrFailedToGetPortfolioStats    = errors.New("failed to get portfolio stats")
	ErrFailedToGetProfitChart       = errors.New("failed to get profit chart")
	ErrFailedToGetSummary           = errors.New("failed to get portfolio summary")
	ErrFailedToSync                 = errors.New("failed to synchronize with remote store")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

func wrapValidation(msg string) error {
	return &validationError{msg: msg}
}
