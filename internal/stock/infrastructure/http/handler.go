package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minimart-io/minimart/internal/stock/application"
	"github.com/minimart-io/minimart/internal/stock/domain"
	"github.com/minimart-io/minimart/pkg/httpserver"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/products", h.handleListProducts)
	router.Get("/products/{id}", h.handleGetProduct)
	router.Post("/reduce-stock", h.handleReduceStock)
	router.Get("/health", httpserver.Health("stock"))
}

type productResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		httpserver.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}
	httpserver.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStockError(w, err)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, toProductResponse(product))
}

type reduceStockRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type reduceStockResponse struct {
	OK      bool            `json:"ok"`
	Product productResponse `json:"product"`
}

func (h *Handler) handleReduceStock(w http.ResponseWriter, r *http.Request) {
	var req reduceStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err)
		return
	}

	product, err := h.service.Reduce(r.Context(), req.ProductID, req.Qty)
	if err != nil {
		writeStockError(w, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, reduceStockResponse{
		OK:      true,
		Product: toProductResponse(product),
	})
}

func writeStockError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpserver.WriteError(w, http.StatusNotFound, errors.New("product not found"))
	case errors.Is(err, domain.ErrInsufficientStock):
		httpserver.WriteError(w, http.StatusBadRequest, errors.New("insufficient stock"))
	case errors.Is(err, domain.ErrInvalidQuantity):
		httpserver.WriteError(w, http.StatusBadRequest, err)
	default:
		httpserver.WriteError(w, http.StatusInternalServerError, err)
	}
}

func toProductResponse(product *domain.Product) productResponse {
	return productResponse{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}
}
