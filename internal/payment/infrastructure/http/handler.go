package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minimart-io/minimart/internal/payment/application"
	"github.com/minimart-io/minimart/internal/payment/domain"
	"github.com/minimart-io/minimart/pkg/httpserver"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/pay", h.handlePay)
	router.Get("/health", httpserver.Health("payment"))
}

type payRequest struct {
	OrderID string `json:"orderId"`
	Amount  int64  `json:"amount"`
}

type payResponse struct {
	ID     string        `json:"id"`
	Status domain.Status `json:"status"`
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.service.Charge(r.Context(), req.OrderID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderRequired), errors.Is(err, domain.ErrInvalidAmount):
			httpserver.WriteError(w, http.StatusBadRequest, err)
		default:
			httpserver.WriteError(w, http.StatusInternalServerError, err)
		}
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, payResponse{
		ID:     result.SettlementID,
		Status: result.Status,
	})
}
