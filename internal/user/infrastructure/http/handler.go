package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minimart-io/minimart/internal/user/application"
	"github.com/minimart-io/minimart/internal/user/domain"
	"github.com/minimart-io/minimart/pkg/httpserver"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", h.handleRegister)
	router.Get("/user/{id}", h.handleGetUser)
	router.Get("/health", httpserver.Health("user"))
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpserver.WriteError(w, http.StatusBadRequest, err)
		return
	}

	user, err := h.service.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		httpserver.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httpserver.WriteError(w, http.StatusNotFound, errors.New("not found"))
			return
		}
		httpserver.WriteError(w, http.StatusInternalServerError, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *domain.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
