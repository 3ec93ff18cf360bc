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

// AssetHandler handles asset-related HTTP requests. All endpoints act on the
// authenticated user's assets only.
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets handles GET requests to list all of the caller's assets, newest first.
//
// Endpoint: GET /api/assets
// Response: 200 OK with []Asset
// Error: 401 Unauthorized without a valid token
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	assets, err := h.assetService.GetAssets(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveAssets)
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// CategoryAssets handles GET requests to list the caller's assets in one category.
//
// Endpoint: GET /api/{categorySlug}/assets
// Response: 200 OK with []Asset
// Error: 404 Not Found if the category does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) CategoryAssets(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	assets, err := h.assetService.GetAssetsInCategory(r.Context(), chi.URLParam(r, CategorySlugParam), user.ID)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveAssets)
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// Asset handles GET requests for a single asset and its ledger.
//
// Endpoint: GET /api/{categorySlug}/assets/{assetSlug}
// Response: 200 OK with AssetDetail, transactions ordered by timestamp ascending
// Error: 404 Not Found if the asset does not exist or belongs to another user
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) Asset(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	asset, err := h.assetService.GetAsset(
		r.Context(),
		chi.URLParam(r, CategorySlugParam),
		chi.URLParam(r, AssetSlugParam),
		user.ID,
	)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveAsset)
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset handles POST requests to create an empty asset in a category.
// The asset gets a generated slug.
//
// Endpoint: POST /api/{categorySlug}/assets/create
// Request Body: CreateAssetRequest (name)
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the category does not exist
// Error: 409 Conflict if the name is taken in the category or no free slug was found
// Error: 500 Internal Server Error if creation fails
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToCreateAsset)
		return
	}

	asset, err := h.assetService.CreateAsset(r.Context(), chi.URLParam(r, CategorySlugParam), user.ID, req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToCreateAsset)
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// DeleteAsset handles DELETE requests to remove an asset and its ledger.
//
// Endpoint: DELETE /api/{categorySlug}/assets/{assetSlug}/delete
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if the asset does not exist or belongs to another user
// Error: 500 Internal Server Error if deletion fails
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	err := h.assetService.DeleteAsset(
		r.Context(),
		chi.URLParam(r, CategorySlugParam),
		chi.URLParam(r, AssetSlugParam),
		user.ID,
	)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToDeleteAsset)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
