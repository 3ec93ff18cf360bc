package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Rahul-Chotaliya/tradehub/internal/api/middleware"
)

func withParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestValidateUUIDParam(t *testing.T) {
	t.Run("passes through valid UUID", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.ValidateUUIDParam("transactionId")(okHandler(&handlerCalled))

		req := withParams(httptest.NewRequest(http.MethodDelete, "/test", nil),
			map[string]string{"transactionId": "550e8400-e29b-41d4-a716-446655440000"})
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if !handlerCalled {
			t.Error("Expected next handler to be called")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("returns 400 for invalid UUID", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.ValidateUUIDParam("transactionId")(okHandler(&handlerCalled))

		req := withParams(httptest.NewRequest(http.MethodDelete, "/test", nil),
			map[string]string{"transactionId": "not-a-uuid"})
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if handlerCalled {
			t.Error("Expected next handler not to be called")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 for missing parameter", func(t *testing.T) {
		handlerCalled := false
		mw := middleware.ValidateUUIDParam("transactionId")(okHandler(&handlerCalled))

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/test", nil))

		if handlerCalled {
			t.Error("Expected next handler not to be called")
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestValidateSlugParams(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   int
	}{
		{"generated slug", map[string]string{"assetSlug": "qwertyuiopasdfg"}, http.StatusOK},
		{"hyphenated category", map[string]string{"categorySlug": "real-estate"}, http.StatusOK},
		{"absent parameter", map[string]string{}, http.StatusOK},
		{"uppercase", map[string]string{"assetSlug": "Bitcoin"}, http.StatusBadRequest},
		{"trailing hyphen", map[string]string{"categorySlug": "crypto-"}, http.StatusBadRequest},
		{"dot segment", map[string]string{"assetSlug": ".."}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			mw := middleware.ValidateSlugParams("categorySlug", "assetSlug")(okHandler(&handlerCalled))

			w := httptest.NewRecorder()
			mw.ServeHTTP(w, withParams(httptest.NewRequest(http.MethodGet, "/test", nil), tt.params))

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, w.Code)
			}
			if handlerCalled != (tt.want == http.StatusOK) {
				t.Errorf("Unexpected handler call state %v", handlerCalled)
			}
		})
	}
}
