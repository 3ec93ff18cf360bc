package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Rahul-Chotaliya/tradehub/internal/api"
	"github.com/Rahul-Chotaliya/tradehub/internal/config"
	"github.com/Rahul-Chotaliya/tradehub/internal/model"
	"github.com/Rahul-Chotaliya/tradehub/internal/testutil"
)

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func newRouter(t *testing.T) (http.Handler, model.User) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	user := testutil.NewUser().Build(t, db)

	cfg := &config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}}}
	router := api.NewRouter(api.Services{
		System:   testutil.NewTestSystemService(t, db),
		Category: testutil.NewTestCategoryService(t, db),
		Asset:    testutil.NewTestAssetService(t, db),
		Auth:     testutil.NewTestAuthService(t, db),
	}, cfg, zerolog.Nop())

	return router, user
}

// TestRouter tests the full request path through routing, authentication and handlers.
//
// WHY: The handler tests bypass routing and the token middleware. This walks a user
// through the whole API the way a client would.
func TestRouter(t *testing.T) {
	router, user := newRouter(t)
	c := &client{t: t, router: router}

	t.Run("health is public", func(t *testing.T) {
		if w := c.do(http.MethodGet, "/api/system/health", nil); w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})

	t.Run("asset endpoints require a token", func(t *testing.T) {
		for _, path := range []string{"/api/assets", "/api/categories", "/api/crypto/assets"} {
			if w := c.do(http.MethodGet, path, nil); w.Code != http.StatusUnauthorized {
				t.Errorf("%s: expected status 401, got %d", path, w.Code)
			}
		}
	})

	// Log in
	w := c.do(http.MethodPost, "/api/api-token-auth", map[string]string{
		"username": user.Username,
		"password": testutil.DefaultPassword,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected login to succeed, got %d: %s", w.Code, w.Body.String())
	}
	var token model.Token
	json.NewDecoder(w.Body).Decode(&token) //nolint:errcheck // test decode
	c.token = token.Token

	// Create an asset
	w = c.do(http.MethodPost, "/api/stocks/assets/create/", map[string]string{"name": "ACME"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected asset creation to succeed, got %d: %s", w.Code, w.Body.String())
	}
	var asset model.Asset
	json.NewDecoder(w.Body).Decode(&asset) //nolint:errcheck // test decode
	base := "/api/stocks/assets/" + asset.Slug

	// Record transactions
	var lastID string
	for _, body := range []map[string]any{
		{"amount": 10, "cost": 100, "transaction_type": "buy", "date": "2024-01-01"},
		{"amount": 5, "cost": 100, "transaction_type": "buy", "date": "2024-01-02"},
		{"amount": 6, "transaction_type": "sell", "date": "2024-01-03"},
	} {
		w = c.do(http.MethodPost, base+"/transaction", body)
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected transaction to be created, got %d: %s", w.Code, w.Body.String())
		}
		var result model.TransactionResult
		json.NewDecoder(w.Body).Decode(&result) //nolint:errcheck // test decode
		lastID = result.Transaction.ID
	}

	t.Run("detail shows the position and ledger", func(t *testing.T) {
		w := c.do(http.MethodGet, base, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var detail model.AssetDetail
		json.NewDecoder(w.Body).Decode(&detail) //nolint:errcheck // test decode
		if !detail.Quantity.Equal(testDecimal("9")) || !detail.TotalCost.Equal(testDecimal("120")) {
			t.Errorf("Expected 9 units for 120, got %+v", detail.Position)
		}
		if len(detail.Transactions) != 3 {
			t.Errorf("Expected 3 transactions, got %d", len(detail.Transactions))
		}
	})

	t.Run("invalid transaction id is rejected", func(t *testing.T) {
		if w := c.do(http.MethodDelete, base+"/transaction/delete/not-a-uuid", nil); w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("invalid asset slug is rejected", func(t *testing.T) {
		if w := c.do(http.MethodGet, "/api/stocks/assets/NOT_A_SLUG", nil); w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("deleting the sell restores the holdings", func(t *testing.T) {
		w := c.do(http.MethodDelete, base+"/transaction/delete/"+lastID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var got model.Asset
		json.NewDecoder(w.Body).Decode(&got) //nolint:errcheck // test decode
		if !got.Quantity.Equal(testDecimal("15")) || !got.TotalCost.Equal(testDecimal("200")) {
			t.Errorf("Expected 15 units for 200, got %+v", got.Position)
		}
	})

	t.Run("asset is listed in its category", func(t *testing.T) {
		w := c.do(http.MethodGet, "/api/categories?with_assets=1", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var categories []model.CategoryAssets
		json.NewDecoder(w.Body).Decode(&categories) //nolint:errcheck // test decode
		found := false
		for _, cat := range categories {
			for _, a := range cat.Assets {
				if a.ID == asset.ID && cat.Slug == "stocks" {
					found = true
				}
			}
		}
		if !found {
			t.Error("Expected asset under stocks")
		}
	})

	t.Run("deleting the asset removes it", func(t *testing.T) {
		if w := c.do(http.MethodDelete, base+"/delete", nil); w.Code != http.StatusNoContent {
			t.Fatalf("Expected status 204, got %d", w.Code)
		}
		if w := c.do(http.MethodGet, base, nil); w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404 after delete, got %d", w.Code)
		}
	})

	t.Run("forged token is rejected", func(t *testing.T) {
		forged := &client{t: t, router: router, token: "gAAAAABforged"}
		if w := forged.do(http.MethodGet, "/api/assets", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}

func testDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
