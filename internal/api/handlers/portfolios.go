package handlers

import (
	"net/http"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the derived portfolio figures.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Stats handles GET requests for the current portfolio statistics.
//
// Endpoint: GET /api/portfolio/stats
// Response: 200 OK with PortfolioStats
// Error: 500 Internal Server Error if the history cannot be read
func (h *PortfolioHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.portfolioService.GetStats(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetPortfolioStats.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// ProfitChart handles GET requests for the realized profit of recent sales.
//
// Endpoint: GET /api/portfolio/chart
// Query Parameters:
//   - limit: number of most recent sales (optional, default 10)
//
// Response: 200 OK with array of ProfitPoint, oldest first
// Error: 400 Bad Request if limit is invalid
// Error: 500 Internal Server Error if the history cannot be read
func (h *PortfolioHandler) ProfitChart(w http.ResponseWriter, r *http.Request) {
	limit, err := request.ParseChartLimit(r.URL.Query().Get("limit"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}

	points, err := h.portfolioService.GetProfitChart(r.Context(), limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetProfitChart.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}
