package handlers

import (
	"net/http"
	"strconv"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/response"
	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// Categories handles GET requests to list all categories ordered by name.
// With ?with_assets=true each category carries the caller's assets in it.
//
// Endpoint: GET /api/categories
// Response: 200 OK with []Category, or []CategoryAssets when with_assets is set
// Error: 400 Bad Request if with_assets is not a boolean
// Error: 500 Internal Server Error if retrieval fails
func (h *CategoryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	withAssets := false
	if raw := r.URL.Query().Get("with_assets"); raw != "" {
		var err error
		if withAssets, err = strconv.ParseBool(raw); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid with_assets parameter", err.Error())
			return
		}
	}

	if !withAssets {
		categories, err := h.categoryService.GetCategories(r.Context())
		if err != nil {
			respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveCategories)
			return
		}
		response.RespondJSON(w, http.StatusOK, categories)
		return
	}

	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	categories, err := h.categoryService.GetCategoriesWithAssets(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToRetrieveCategories)
		return
	}

	response.RespondJSON(w, http.StatusOK, categories)
}
