package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minimart-io/minimart/internal/order/application"
	"github.com/minimart-io/minimart/internal/order/domain"
	"github.com/minimart-io/minimart/pkg/httpserver"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/order", h.handlePlaceOrder)
	router.Get("/order/{id}", h.handleGetOrder)
	router.Get("/health", httpserver.Health("order"))
}

type placeOrderRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type orderResponse struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	ProductID string        `json:"productId"`
	Qty       int           `json:"qty"`
	Status    domain.Status `json:"status"`
}

type placementErrorResponse struct {
	Error string         `json:"error"`
	Step  string         `json:"step,omitempty"`
	Order *orderResponse `json:"order,omitempty"`
}

func (h *Handler) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err)
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), application.PlaceOrderInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Qty:       req.Qty,
	})
	if err != nil {
		writePlacementError(w, order, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpserver.WriteError(w, http.StatusNotFound, errors.New("not found"))
			return
		}
		httpserver.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, toOrderResponse(order))
}

// writePlacementError maps each failure to the status for its step and
// kind, so callers can tell "no stock" from "payment declined" without
// parsing messages. A payment-stage failure still carries the CREATED
// order in the body: the stock decrement stands and the record exists.
func writePlacementError(w http.ResponseWriter, order *domain.Order, err error) {
	status := http.StatusInternalServerError
	switch {
	case application.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, application.ErrStockUnavailable),
		errors.Is(err, application.ErrPaymentDeclined),
		errors.Is(err, application.ErrPaymentUnavailable):
		status = http.StatusBadGateway
	}

	body := placementErrorResponse{Error: err.Error()}
	var stepErr *application.StepError
	if errors.As(err, &stepErr) {
		body.Step = string(stepErr.Step)
	}
	if order != nil {
		body.Order = toOrderResponse(order)
	}

	httpserver.WriteJSON(w, status, body)
}

func toOrderResponse(order *domain.Order) *orderResponse {
	return &orderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		ProductID: order.ProductID,
		Qty:       order.Qty,
		Status:    order.Status,
	}
}
