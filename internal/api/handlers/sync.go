package handlers

import (
	"net/http"

	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/service"
)

// SyncHandler handles HTTP requests that reconcile with the remote record store.
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new SyncHandler with the provided service dependency.
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// Pull handles POST requests to import the remote history.
//
// Endpoint: POST /api/sync/pull
// Response: 200 OK with PullResult; warning is set when the remote could not be read
// Error: 500 Internal Server Error if imported records cannot be stored
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncService.Pull(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSync.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Push handles POST requests to retry every unsynced transaction now.
//
// Endpoint: POST /api/sync/push
// Response: 200 OK with PushResult
// Error: 500 Internal Server Error if the local store fails
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	result, err := h.syncService.Push(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSync.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Status handles GET requests for the number of transactions per sync state.
//
// Endpoint: GET /api/sync/status
// Response: 200 OK with SyncStatusCounts
// Error: 500 Internal Server Error if the local store fails
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	counts, err := h.syncService.Status(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSync.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, counts)
}
