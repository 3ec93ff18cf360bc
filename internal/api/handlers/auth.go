package handlers

import (
	"net/http"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/request"
	"github.com/Rahul-Chotaliya/tradehub/internal/api/response"
	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/service"
	"github.com/Rahul-Chotaliya/tradehub/internal/validation"
)

// AuthHandler issues API tokens.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ObtainToken exchanges a username and password for an API token.
//
// Endpoint: POST /api/api-token-auth
// Request Body: LoginRequest (username, password)
// Response: 200 OK with Token
// Error: 400 Bad Request if a field is missing or the credentials do not match
// Error: 500 Internal Server Error if the token cannot be issued
func (h *AuthHandler) ObtainToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToIssueToken)
		return
	}

	token, err := h.authService.IssueToken(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err, apperrors.ErrFailedToIssueToken)
		return
	}

	response.RespondJSON(w, http.StatusOK, token)
}
