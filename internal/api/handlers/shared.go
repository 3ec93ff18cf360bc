package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/middleware"
	"github.com/Rahul-Chotaliya/tradehub/internal/api/response"
	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/validation"
)

// URL parameter names shared by the router and the handlers.
const (
	CategorySlugParam  = "categorySlug"
	AssetSlugParam     = "assetSlug"
	TransactionIDParam = "transactionId"
)

// parseJSON decodes the request body into a value of type T.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// requireUser returns the authenticated user or writes a 401 response.
func requireUser(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, "unauthorized", apperrors.ErrMissingToken.Error())
		return model.User{}, false
	}
	return user, true
}

var notFoundErrors = []error{
	apperrors.ErrCategoryNotFound,
	apperrors.ErrAssetNotFound,
	apperrors.ErrTransactionNotFound,
	apperrors.ErrUserNotFound,
}

// respondServiceError maps a service error to its HTTP status by error kind.
// Errors of no known kind are logged and reported as 500 with failure as the message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, failure error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())

	case errors.Is(err, apperrors.ErrNotFound):
		message := apperrors.ErrNotFound.Error()
		for _, target := range notFoundErrors {
			if errors.Is(err, target) {
				message = target.Error()
				break
			}
		}
		response.RespondError(w, http.StatusNotFound, message, err.Error())

	case errors.Is(err, apperrors.ErrConflict):
		response.RespondError(w, http.StatusConflict, apperrors.ErrConflict.Error(), err.Error())

	case errors.Is(err, apperrors.ErrUnauthorized):
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), err.Error())

	default:
		logger.FromContext(r.Context()).Error().Err(err).Msg(failure.Error())
		response.RespondError(w, http.StatusInternalServerError, failure.Error(), err.Error())
	}
}
