package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/auth"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/envelope"
	commontransport "github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/transport"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/order/domain/model"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/order/domain/service"
)

func Router(orders service.OrderService, tokens *auth.TokenManager) http.Handler {
	h := &handler{orders: orders}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()
	s.Use(tokens.Middleware)

	s.HandleFunc("/orders", h.createOrder).Methods(http.MethodPost)
	s.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	s.HandleFunc("/orders/{ID}", h.getOrder).Methods(http.MethodGet)
	s.HandleFunc("/orders/{ID}/pay", h.payOrder).Methods(http.MethodPost)
	s.HandleFunc("/orders/{ID}/cancel", h.cancelOrder).Methods(http.MethodPost)

	return commontransport.LogMiddleware(r)
}

type handler struct {
	orders service.OrderService
}

type createOrderItem struct {
	BookID   uuid.UUID `json:"bookId"`
	Quantity int       `json:"quantity"`
}

type createOrderRequest struct {
	Items []createOrderItem `json:"items"`
}

type orderItemResponse struct {
	BookID   uuid.UUID       `json:"bookId"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type orderResponse struct {
	ID         uuid.UUID           `json:"id"`
	UserEmail  string              `json:"userEmail"`
	TotalPrice decimal.Decimal     `json:"totalPrice"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"createdAt"`
	Items      []orderItemResponse `json:"items"`
}

func (h *handler) createOrder(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"items: must not be empty"})
		return
	}

	lines := make([]service.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.OrderLine{BookID: item.BookID, Quantity: item.Quantity})
	}

	order, err := h.orders.CreateOrder(claims.Email(), lines, auth.TokenFromContext(r.Context()))
	if err != nil {
		writeOrderError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Order created successfully", toOrderResponse(order))
}

func (h *handler) payOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}
	claims := auth.ClaimsFromContext(r.Context())

	order, err := h.orders.PayOrder(orderID, claims.Email())
	if err != nil {
		writeOrderError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Order paid successfully", toOrderResponse(order))
}

func (h *handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}
	claims := auth.ClaimsFromContext(r.Context())

	order, err := h.orders.CancelOrder(orderID, claims.Email(), auth.TokenFromContext(r.Context()))
	if err != nil {
		writeOrderError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Order cancelled successfully", toOrderResponse(order))
}

func (h *handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := parseOrderID(w, r)
	if !ok {
		return
	}
	claims := auth.ClaimsFromContext(r.Context())

	order, err := h.orders.GetOrder(orderID, claims.Email(), claims.IsAdmin())
	if err != nil {
		writeOrderError(w, err)
		return
	}

	envelope.WriteSuccess(w, fmt.Sprintf("Find Order with username: %s", claims.Name), toOrderResponse(order))
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	orders, err := h.orders.ListOrders(claims.Email(), claims.IsAdmin())
	if err != nil {
		writeOrderError(w, err)
		return
	}

	responses := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}

	envelope.WriteSuccess(w, "Orders retrieved", responses)
}

func parseOrderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(mux.Vars(r)["ID"])
	if err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"invalid order id"})
		return uuid.Nil, false
	}
	return orderID, true
}

func writeOrderError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	var rErr *service.ReservationError

	switch {
	case errors.As(err, &vErr):
		envelope.WriteFailure(w, http.StatusNotFound, "Validation failed", vErr.Reasons)
	case errors.As(err, &rErr):
		envelope.WriteFailure(w, http.StatusNotFound, "Failed to reserve stock", rErr.Reasons)
	case errors.Is(err, model.ErrOrderNotFound):
		envelope.WriteFailure(w, http.StatusNotFound, "Order not found", []string{"ORDER_NOT_FOUND"})
	case errors.Is(err, model.ErrNotOrderOwner):
		envelope.WriteFailure(w, http.StatusBadRequest, "Invalid credentials", []string{"User email does not match order owner"})
	case errors.Is(err, model.ErrCannotPayCancelled):
		envelope.WriteFailure(w, http.StatusBadRequest, "Failed pay order", []string{"Cannot pay a cancelled order"})
	case errors.Is(err, model.ErrCannotCancelPaid):
		envelope.WriteFailure(w, http.StatusBadRequest, "Failed cancel order", []string{"Cannot cancel a paid order"})
	case errors.Is(err, model.ErrAccessDenied):
		envelope.WriteFailure(w, http.StatusBadRequest, "Invalid credentials", []string{"Access denied"})
	case errors.Is(err, model.ErrEmptyOrder), errors.Is(err, model.ErrInvalidQuantity):
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{err.Error()})
	default:
		log.WithError(err).Error("order request failed")
		envelope.WriteFailure(w, http.StatusInternalServerError, "Internal error", []string{err.Error()})
	}
}

func toOrderResponse(order *model.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{BookID: item.BookID, Quantity: item.Quantity, Price: item.Price})
	}

	return orderResponse{
		ID:         order.ID,
		UserEmail:  order.UserEmail,
		TotalPrice: order.TotalPrice,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		Items:      items,
	}
}
