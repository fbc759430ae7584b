package request

// CreateTransactionRequest is the body of POST /api/transaction.
// Date is optional and defaults to the time the request is received.
type CreateTransactionRequest struct {
	Type      string  `json:"type"`
	AmountUSD float64 `json:"amountUSD"`
	Rate      float64 `json:"rate"`
	Date      string  `json:"date,omitempty"`
}
