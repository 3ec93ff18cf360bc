// Package middleware provides HTTP middleware for authentication, request validation
// and request logging.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/response"
	"github.com/Rahul-Chotaliya/tradehub/internal/validation"
)

// ValidateUUIDParam returns a middleware that validates that the named URL parameter is
// present and is a valid UUID. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.With(middleware.ValidateUUIDParam("transactionId")).
//	    Delete("/transaction/delete/{transactionId}", handler.DeleteTransaction)
func ValidateUUIDParam(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)

			if id == "" {
				response.RespondError(w, http.StatusBadRequest, "valid UUID is required", nil)
				return
			}

			if err := validation.ValidateUUID(id); err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ValidateSlugParams returns a middleware that rejects requests whose named URL parameters
// are not well-formed slugs. Parameters absent from the route are ignored.
func ValidateSlugParams(params ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, param := range params {
				value := chi.URLParam(r, param)
				if value == "" {
					continue
				}
				if err := validation.ValidateSlug(value); err != nil {
					response.RespondError(w, http.StatusBadRequest, "invalid slug format", err.Error())
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
