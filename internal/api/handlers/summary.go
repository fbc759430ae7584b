package handlers

import (
	"net/http"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/service"
)

// SummaryHandler handles HTTP requests for the narrative portfolio summary.
type SummaryHandler struct {
	summaryService *service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler with the provided service dependency.
func NewSummaryHandler(summaryService *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
	}
}

// Summary handles POST requests to generate a narrative analysis.
// Generation problems are reported through the fallback text, not the status code.
//
// Endpoint: POST /api/summary
// Response: 200 OK with Summary
// Error: 500 Internal Server Error if the history cannot be read
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.summaryService.GetSummary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
