package app

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/fos/internal/domain"
	"github.com/vladislavdragonenkov/fos/internal/service/catalog"
	"github.com/vladislavdragonenkov/fos/internal/service/checkout"
	"github.com/vladislavdragonenkov/fos/internal/service/order"
)

// apiServer маршрутизирует JSON API поверх сервисов каталога и заказов.
type apiServer struct {
	catalog      *catalog.Service
	orders       *order.Service
	orderRepo    domain.OrderRepository
	orchestrator checkout.Orchestrator
	logger       *log.Entry
}

func newAPIServer(
	catalogSvc *catalog.Service,
	orderSvc *order.Service,
	orderRepo domain.OrderRepository,
	orchestrator checkout.Orchestrator,
	logger *log.Entry,
) *apiServer {
	return &apiServer{
		catalog:      catalogSvc,
		orders:       orderSvc,
		orderRepo:    orderRepo,
		orchestrator: orchestrator,
		logger:       logger.WithField("layer", "http"),
	}
}

func (s *apiServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/meals", s.handleListMeals)
	mux.HandleFunc("POST /api/meals", s.handleCreateMeal)
	mux.HandleFunc("GET /api/meals/{id}", s.handleGetMeal)
	mux.HandleFunc("PATCH /api/meals/{id}", s.handleUpdateMeal)
	mux.HandleFunc("DELETE /api/meals/{id}", s.handleDeleteMeal)
	mux.HandleFunc("GET /api/orders", s.handleListOrders)
	mux.HandleFunc("GET /api/orders/{id}", s.handleGetOrder)
	mux.HandleFunc("POST /api/orders", s.handleCreateOrder)
	mux.HandleFunc("POST /api/checkout", s.handleCheckout)
	return mux
}

func (s *apiServer) handleListMeals(w http.ResponseWriter, r *http.Request) {
	meals, err := s.catalog.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, meals)
}

func (s *apiServer) handleCreateMeal(w http.ResponseWriter, r *http.Request) {
	var meal domain.Meal
	if !s.decodeBody(w, r, &meal) {
		return
	}

	id, err := s.catalog.Create(r.Context(), meal)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *apiServer) handleGetMeal(w http.ResponseWriter, r *http.Request) {
	meal, err := s.catalog.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, meal)
}

func (s *apiServer) handleUpdateMeal(w http.ResponseWriter, r *http.Request) {
	var patch domain.MealPatch
	if !s.decodeBody(w, r, &patch) {
		return
	}

	ok, err := s.catalog.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		s.writeError(w, domain.ErrNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *apiServer) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	ok, err := s.catalog.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		s.writeError(w, domain.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *apiServer) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orderRepo.FindAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, orders)
}

func (s *apiServer) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	found, err := s.orderRepo.FindByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, found)
}

func (s *apiServer) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var payload domain.CreateOrderPayload
	if !s.decodeBody(w, r, &payload) {
		return
	}

	id, err := s.orders.Create(r.Context(), payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type checkoutRequest struct {
	UserID string             `json:"user_id"`
	ShopID string             `json:"shop_id"`
	Items  []domain.OrderItem `json:"items"`
}

type checkoutResponse struct {
	State   checkout.State  `json:"state"`
	OrderID string          `json:"order_id,omitempty"`
	Cart    domain.UserCart `json:"cart"`
}

func (s *apiServer) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.orchestrator.Checkout(r.Context(), req.UserID, req.ShopID, req.Items)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, checkoutResponse{
		State:   result.State,
		OrderID: result.OrderID,
		Cart:    result.Cart,
	})
}

func (s *apiServer) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// writeError переводит вид ошибки в HTTP-статус. Текст ошибки уходит
// клиенту как есть: чувствительных деталей в доменных ошибках нет.
func (s *apiServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrCheckoutInFlight):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrMealExists):
		status = http.StatusConflict
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case domain.IsNotFound(err):
		status = http.StatusNotFound
	case domain.IsPersistence(err):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("unclassified error in handler")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Warn("failed to encode response")
	}
}
