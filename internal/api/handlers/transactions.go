package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/request"
	"github.com/Rahul-Chotaliya/tradehub/internal/api/response"
	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/service"
	"github.com/Rahul-Chotaliya/tradehub/internal/validation"
)

// TransactionHandler handles ledger mutations on an asset.
type TransactionHandler struct {
	assetService *service.AssetService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(assetService *service.AssetService) *TransactionHandler {
	return &TransactionHandler{
		assetService: assetService,
	}
}

// CreateTransaction handles POST requests to record a buy or sell on an asset.
// The asset's cached position is recomputed in the same database transaction.
//
// Endpoint: POST /api/{categorySlug}/assets/{assetSlug}/transaction
// Request Body: CreateTransactionRequest (amount, cost?, transaction_type, date?)
// Response: 201 Created with TransactionResult
// Error: 400 Bad Request if validation fails, the body is invalid or holdings are insufficient
// Error: 404 Not Found if the asset does not exist or belongs to another user
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToCreateTransaction)
		return
	}

	result, err := h.assetService.AddTransaction(
		r.Context(),
		chi.URLParam(r, CategorySlugParam),
		chi.URLParam(r, AssetSlugParam),
		user.ID,
		req,
	)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToCreateTransaction)
		return
	}

	response.RespondJSON(w, http.StatusCreated, result)
}

// DeleteTransaction handles DELETE requests to remove a transaction from an asset's ledger.
//
// Endpoint: DELETE /api/{categorySlug}/assets/{assetSlug}/transaction/delete/{transactionId}
// Response: 200 OK with the Asset and its recomputed position
// Error: 400 Bad Request if the transaction ID is invalid (validated by middleware) or
// removing it would leave a later sell without holdings
// Error: 404 Not Found if the asset or the transaction on it does not exist
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	asset, err := h.assetService.DeleteTransaction(
		r.Context(),
		chi.URLParam(r, CategorySlugParam),
		chi.URLParam(r, AssetSlugParam),
		chi.URLParam(r, TransactionIDParam),
		user.ID,
	)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToDeleteTransaction)
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}
