package httptransport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/minimart-io/minimart/internal/stock/application"
	"github.com/minimart-io/minimart/internal/stock/infrastructure/memory"
	"github.com/minimart-io/minimart/pkg/ids"
)

func newTestRouter(t *testing.T, seedStock int) (http.Handler, string) {
	t.Helper()
	service := application.NewService(memory.NewProductRepository(), ids.NewUUIDGenerator())
	seeded, err := service.Seed(context.Background(), "Sample Product", 1999, seedStock)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	router := chi.NewRouter()
	NewHandler(service).RegisterRoutes(router)
	return router, seeded.ID
}

func TestHandleReduceStock(t *testing.T) {
	t.Parallel()

	t.Run("reduces and returns the product", func(t *testing.T) {
		router, productID := newTestRouter(t, 100)

		body := fmt.Sprintf(`{"productId":%q,"qty":5}`, productID)
		req := httptest.NewRequest(http.MethodPost, "/reduce-stock", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
		}
		var resp reduceStockResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if !resp.OK {
			t.Fatalf("expected ok=true")
		}
		if resp.Product.Stock != 95 {
			t.Fatalf("expected stock 95, got %d", resp.Product.Stock)
		}
	})

	t.Run("insufficient stock is a 400 and decrements nothing", func(t *testing.T) {
		router, productID := newTestRouter(t, 3)

		body := fmt.Sprintf(`{"productId":%q,"qty":5}`, productID)
		req := httptest.NewRequest(http.MethodPost, "/reduce-stock", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "insufficient stock") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}

		getReq := httptest.NewRequest(http.MethodGet, "/products/"+productID, nil)
		getRec := httptest.NewRecorder()
		router.ServeHTTP(getRec, getReq)
		var product productResponse
		if err := json.Unmarshal(getRec.Body.Bytes(), &product); err != nil {
			t.Fatalf("decode product: %v", err)
		}
		if product.Stock != 3 {
			t.Fatalf("stock changed on rejected reduce: %d", product.Stock)
		}
	})

	t.Run("unknown product is a 404", func(t *testing.T) {
		router, _ := newTestRouter(t, 100)

		req := httptest.NewRequest(http.MethodPost, "/reduce-stock", strings.NewReader(`{"productId":"missing","qty":1}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "product not found") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		router, _ := newTestRouter(t, 100)

		req := httptest.NewRequest(http.MethodPost, "/reduce-stock", strings.NewReader(`{"productId":`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHandleProducts(t *testing.T) {
	t.Parallel()

	router, productID := newTestRouter(t, 100)

	t.Run("list returns the catalog", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var products []productResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &products); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(products) != 1 || products[0].ID != productID {
			t.Fatalf("unexpected catalog: %+v", products)
		}
	})

	t.Run("get unknown product", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
