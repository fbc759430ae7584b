package remotestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// wireDateLayout matches the ISO form browsers produce with toISOString.
const wireDateLayout = "2006-01-02T15:04:05.000Z07:00"

// acceptedDateLayouts are tried in order when reading a remote record.
var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// record is a transaction as the remote store reports it. Numeric fields are
// often strings when the store is backed by a SQL table, so they are decoded
// as decimals, which accept either form. A missing amount or rate decodes to
// zero and is rejected by decodeRecord.
type record struct {
	ID              string          `json:"id"`
	Date            string          `json:"date"`
	Type            string          `json:"type"`
	AmountUSD       decimal.Decimal `json:"amountUSD"`
	Rate            decimal.Decimal `json:"rate"`
	TotalLocal      json.RawMessage `json:"totalLocal,omitempty"`
	Profit          json.RawMessage `json:"profit,omitempty"`
	CostBasisAtTime json.RawMessage `json:"costBasisAtTime,omitempty"`
}

// outgoing is the record shape written by Append.
type outgoing struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	Type            string   `json:"type"`
	AmountUSD       float64  `json:"amountUSD"`
	Rate            float64  `json:"rate"`
	TotalLocal      float64  `json:"totalLocal"`
	Profit          *float64 `json:"profit,omitempty"`
	CostBasisAtTime *float64 `json:"costBasisAtTime,omitempty"`
}

func newOutgoing(tx model.Transaction) outgoing {
	return outgoing{
		ID:              tx.ID,
		Date:            tx.Date.UTC().Format(wireDateLayout),
		Type:            string(tx.Type),
		AmountUSD:       tx.AmountUSD,
		Rate:            tx.Rate,
		TotalLocal:      tx.TotalLocal,
		Profit:          tx.Profit,
		CostBasisAtTime: tx.CostBasisAtTime,
	}
}

// decodeList parses a List response body. A body that is not a JSON array
// fails as a whole; individual entries that cannot be coerced are skipped
// and counted.
func decodeList(body []byte) ([]model.Transaction, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, err
	}

	transactions := make([]model.Transaction, 0, len(raw))
	skipped := 0
	for _, entry := range raw {
		tx, err := decodeRecord(entry)
		if err != nil {
			skipped++
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, skipped, nil
}

func decodeRecord(entry json.RawMessage) (model.Transaction, error) {
	var r record
	if err := json.Unmarshal(entry, &r); err != nil {
		return model.Transaction{}, err
	}

	if strings.TrimSpace(r.ID) == "" {
		return model.Transaction{}, fmt.Errorf("record has no id")
	}

	txType := model.TransactionType(strings.ToUpper(strings.TrimSpace(r.Type)))
	if !txType.Valid() {
		return model.Transaction{}, fmt.Errorf("record %s has unknown type %q", r.ID, r.Type)
	}

	if !r.AmountUSD.IsPositive() {
		return model.Transaction{}, fmt.Errorf("record %s has non-positive amountUSD %s", r.ID, r.AmountUSD)
	}
	if !r.Rate.IsPositive() {
		return model.Transaction{}, fmt.Errorf("record %s has non-positive rate %s", r.ID, r.Rate)
	}

	date, err := parseDate(r.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("record %s: %w", r.ID, err)
	}

	profit, err := optionalFloat(r.Profit)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("record %s profit: %w", r.ID, err)
	}
	costBasis, err := optionalFloat(r.CostBasisAtTime)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("record %s costBasisAtTime: %w", r.ID, err)
	}

	// totalLocal is amountUSD * rate by definition; fill it in when absent.
	totalLocal, err := optionalFloat(r.TotalLocal)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("record %s totalLocal: %w", r.ID, err)
	}
	if totalLocal == nil {
		v := r.AmountUSD.Mul(r.Rate).InexactFloat64()
		totalLocal = &v
	}

	return model.Transaction{
		ID:              r.ID,
		Date:            date,
		Type:            txType,
		AmountUSD:       r.AmountUSD.InexactFloat64(),
		Rate:            r.Rate.InexactFloat64(),
		TotalLocal:      *totalLocal,
		Profit:          profit,
		CostBasisAtTime: costBasis,
	}, nil
}

// optionalFloat treats an absent, null or empty-string value as missing.
func optionalFloat(raw json.RawMessage) (*float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" || string(trimmed) == `""` {
		return nil, nil
	}

	var d decimal.NullDecimal
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, err
	}
	if !d.Valid {
		return nil, nil
	}
	v := d.Decimal.InexactFloat64()
	return &v, nil
}

func parseDate(str string) (time.Time, error) {
	str = strings.TrimSpace(str)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", str)
}
