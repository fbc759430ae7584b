package remotestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
)

// Client is the HTTP implementation of Store. The store exposes a single URL:
// GET returns the full history as a JSON array and POST appends one record.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a remote store client for the given URL. Every request is
// bounded by timeout in addition to the caller's context.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// List fetches the full remote history.
//
// Returns:
//   - apperrors.ErrPersistence when the store is unreachable or answers with a non-2xx status
//   - apperrors.ErrMalformedResponse when the body is not a JSON array
//
// Entries that cannot be coerced into a transaction are skipped and logged.
func (c *Client) List(ctx context.Context) ([]model.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrPersistence, err)
	}
	if !isSuccess(status) {
		logger.L.Error("remote store list failed", "status", status, "body", truncate(body))
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrPersistence, status)
	}

	transactions, skipped, err := decodeList(body)
	if err != nil {
		logger.L.Error("remote store returned invalid JSON", "error", err, "body", truncate(body))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrMalformedResponse, err)
	}
	if skipped > 0 {
		logger.L.Warn("skipped unreadable remote records", "skipped", skipped)
	}

	return transactions, nil
}

// Append posts one transaction to the store. A 2xx answer counts as success
// even when its body is not JSON, since some store backends print warnings
// ahead of their reply.
func (c *Client) Append(ctx context.Context, tx model.Transaction) bool {
	payload, err := json.Marshal(newOutgoing(tx))
	if err != nil {
		logger.L.Error("failed to encode transaction for remote store", "id", tx.ID, "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		logger.L.Error("failed to build remote store request", "id", tx.ID, "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		logger.L.Error("remote store unreachable", "id", tx.ID, "error", err)
		return false
	}
	if !isSuccess(status) {
		logger.L.Error("remote store rejected transaction", "id", tx.ID, "status", status, "body", truncate(body))
		return false
	}
	if !json.Valid(body) {
		logger.L.Warn("remote store accepted transaction with non-JSON reply", "id", tx.ID, "body", truncate(body))
	}

	return true
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, data, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func truncate(body []byte) string {
	const maxLogged = 200
	if len(body) > maxLogged {
		return string(body[:maxLogged])
	}
	return string(body)
}
