// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Dollar-Trade-Tracker-Backend/internal/validation"
)

// ValidateIDMiddleware validates that the id URL parameter is present and is a
// well-formed transaction ID. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateIDMiddleware)
//	    r.Get("/", handler.GetTransaction)
//	})
func ValidateIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "transaction ID is required", "")
			return
		}

		if err := validation.ValidateID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid transaction ID", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
