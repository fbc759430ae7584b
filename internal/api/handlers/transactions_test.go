package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/service"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/testutil"
)

func TestTransactionHandler_AllTransactions(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db, nil)
		return NewTransactionHandler(ts), db
	}

	t.Run("returns empty array when no transactions exist", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("Expected empty JSON array, got %s", body)
		}
	})

	t.Run("returns all transactions newest first", func(t *testing.T) {
		handler, db := setupHandler(t)

		tx1 := testutil.CreateBuy(t, db, 0, 100, 110)
		tx2 := testutil.CreateSell(t, db, 3, 10, 120)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(response))
		}
		if response[0].ID != tx2.ID || response[1].ID != tx1.ID {
			t.Errorf("Expected newest first, got %s, %s", response[0].ID, response[1].ID)
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.AllTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db, nil)
		return NewTransactionHandler(ts), db
	}

	t.Run("returns transaction successfully", func(t *testing.T) {
		handler, db := setupHandler(t)
		tx := testutil.NewTransaction().Sell().WithProfit(750, 115).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+tx.ID, map[string]string{"id": tx.ID})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != tx.ID || response.Type != model.TransactionTypeSell {
			t.Errorf("Unexpected transaction: %+v", response)
		}
		if response.Profit == nil || *response.Profit != 750 {
			t.Errorf("Expected profit 750, got %v", response.Profit)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+id, map[string]string{"id": id})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/x", map[string]string{"id": "x"})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

//nolint:gocyclo // Comprehensive integration test with multiple subtests
func TestTransactionHandler_CreateTransaction(t *testing.T) {
	setupHandler := func(t *testing.T, remote *testutil.MockRemoteStore) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ts := testutil.NewTestTransactionService(t, db, remote)
		return NewTransactionHandler(ts), db
	}

	post := func(handler *TransactionHandler, body string) *httptest.ResponseRecorder {
		req := testutil.NewJSONRequest(http.MethodPost, "/api/transaction", body)
		w := httptest.NewRecorder()
		handler.CreateTransaction(w, req)
		return w
	}

	t.Run("creates a buy", func(t *testing.T) {
		handler, db := setupHandler(t, testutil.NewMockRemoteStore())

		w := post(handler, `{"type":"BUY","amountUSD":100,"rate":110,"date":"2025-01-01"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var result model.SubmitResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if result.Transaction.TotalLocal != 11000 {
			t.Errorf("Expected totalLocal 11000, got %v", result.Transaction.TotalLocal)
		}
		if result.Warning != "" {
			t.Errorf("Expected no warning, got %q", result.Warning)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("returns 201 with warning when remote store fails", func(t *testing.T) {
		handler, db := setupHandler(t, testutil.NewMockRemoteStore().Rejecting())

		w := post(handler, `{"type":"BUY","amountUSD":100,"rate":110}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var result model.SubmitResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if result.Warning != service.WarnRemoteSaveFailed {
			t.Errorf("Expected remote warning, got %q", result.Warning)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("returns 400 when selling more than held", func(t *testing.T) {
		handler, db := setupHandler(t, nil)
		testutil.CreateBuy(t, db, 0, 10, 110)

		w := post(handler, `{"type":"SELL","amountUSD":11,"rate":120}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var errResp response.ErrorResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&errResp)

		if errResp.Details != "not enough USD inventory to sell this amount" {
			t.Errorf("Unexpected error details: %v", errResp.Details)
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("returns 400 with field errors", func(t *testing.T) {
		handler, _ := setupHandler(t, nil)

		w := post(handler, `{"type":"HOLD","amountUSD":0,"rate":-1,"date":"soon"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		var errResp struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&errResp)

		for _, field := range []string{"type", "amountUSD", "rate", "date"} {
			if _, ok := errResp.Details[field]; !ok {
				t.Errorf("Expected an error for %s, got %v", field, errResp.Details)
			}
		}
	})

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		handler, _ := setupHandler(t, nil)

		w := post(handler, `{"type":`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t, nil)
		db.Close()

		w := post(handler, `{"type":"BUY","amountUSD":1,"rate":110}`)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
