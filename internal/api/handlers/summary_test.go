package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/summary"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/testutil"
)

func TestSummaryHandler_Summary(t *testing.T) {
	t.Run("returns generated text", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.CreateBuy(t, db, 0, 100, 110)
		handler := NewSummaryHandler(testutil.NewTestSummaryService(t, db, &testutil.MockGenerator{Text: "  ধরে রাখুন  "}))

		req := httptest.NewRequest(http.MethodPost, "/api/summary", nil)
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.Summary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if !got.Available || got.Text != "ধরে রাখুন" {
			t.Errorf("Unexpected summary: %+v", got)
		}
	})

	t.Run("returns 200 with fallback text when no key is configured", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSummaryHandler(testutil.NewTestSummaryService(t, db, nil))

		req := httptest.NewRequest(http.MethodPost, "/api/summary", nil)
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.Summary
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&got)

		if got.Available || got.Text != summary.MissingCredentialText {
			t.Errorf("Unexpected summary: %+v", got)
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSummaryHandler(testutil.NewTestSummaryService(t, db, &testutil.MockGenerator{Text: "ok"}))
		db.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/summary", nil)
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
