package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/response"
	"github.com/Rahul-Chotaliya/tradehub/internal/apperrors"
	"github.com/Rahul-Chotaliya/tradehub/internal/logger"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
)

type contextKey string

const userKey contextKey = "user"

// TokenResolver maps an API token to the user it was issued to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (model.User, error)
}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user stored by Authenticate.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

// Authenticate returns a middleware that requires an "Authorization: Token <token>" or
// "Authorization: Bearer <token>" header. Missing or invalid tokens get 401.
func Authenticate(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := tokenFromHeader(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, apperrors.ErrMissingToken)
				return
			}

			user, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnauthorized) {
					unauthorized(w, err)
					return
				}
				logger.FromContext(r.Context()).Error().Err(err).Msg("failed to resolve token")
				response.RespondError(w, http.StatusInternalServerError, "failed to authenticate", err.Error())
				return
			}

			ctx := WithUser(r.Context(), user)
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With().Str("user_id", user.ID).Logger())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromHeader(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("WWW-Authenticate", "Token")
	response.RespondError(w, http.StatusUnauthorized, "unauthorized", err.Error())
}
