package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/model"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/testutil"
)

func TestPortfolioHandler_Stats(t *testing.T) {
	setupHandler := func(t *testing.T) (*PortfolioHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewPortfolioHandler(testutil.NewTestPortfolioService(t, db)), db
	}

	t.Run("returns zero stats for an empty history", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/stats", nil)
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var stats model.PortfolioStats
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&stats)

		if stats != (model.PortfolioStats{}) {
			t.Errorf("Expected zero stats, got %+v", stats)
		}
	})

	t.Run("returns weighted average figures", func(t *testing.T) {
		handler, db := setupHandler(t)
		testutil.CreateBuy(t, db, 0, 100, 110)
		testutil.CreateBuy(t, db, 1, 100, 120)
		testutil.NewTransaction().WithDate(testutil.BaseDate.AddDate(0, 0, 2)).Sell().
			WithAmount(50).WithRate(130).WithProfit(750, 115).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/stats", nil)
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var stats model.PortfolioStats
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&stats)

		if stats.CurrentInventoryUSD != 150 || stats.WeightedAvgCost != 115 || stats.TotalRealizedProfit != 750 {
			t.Errorf("Unexpected stats: %+v", stats)
		}
		if stats.TransactionCount != 3 {
			t.Errorf("Expected 3 transactions, got %d", stats.TransactionCount)
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/stats", nil)
		w := httptest.NewRecorder()

		handler.Stats(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPortfolioHandler_ProfitChart(t *testing.T) {
	setupHandler := func(t *testing.T) (*PortfolioHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewPortfolioHandler(testutil.NewTestPortfolioService(t, db)), db
	}

	t.Run("returns the most recent sales", func(t *testing.T) {
		handler, db := setupHandler(t)
		testutil.CreateBuy(t, db, 0, 100, 100)
		testutil.CreateSell(t, db, 1, 10, 110)
		testutil.CreateSell(t, db, 2, 10, 120)
		testutil.CreateSell(t, db, 3, 10, 130)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/chart", map[string]string{"limit": "2"})
		w := httptest.NewRecorder()

		handler.ProfitChart(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var points []model.ProfitPoint
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&points)

		if len(points) != 2 {
			t.Fatalf("Expected 2 points, got %d", len(points))
		}
		if points[0].Rate != 120 || points[1].Rate != 130 {
			t.Errorf("Expected the last two sales oldest first, got %+v", points)
		}
	})

	t.Run("returns 400 for invalid limit", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/portfolio/chart", map[string]string{"limit": "abc"})
		w := httptest.NewRecorder()

		handler.ProfitChart(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/chart", nil)
		w := httptest.NewRecorder()

		handler.ProfitChart(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
