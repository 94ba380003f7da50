package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/order/domain/model"
)

// ValidationError aggregates per-item failures from the validation pass.
// When it is returned no stock has been touched.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string { return "validation failed" }

// ReservationError reports a failed stock decrement. Reservations made before
// the failure have already been compensated when it is returned.
type ReservationError struct {
	Reasons []string
}

func (e *ReservationError) Error() string { return "failed to reserve stock" }

// OrderLine is one requested (book, quantity) pair.
type OrderLine struct {
	BookID   uuid.UUID
	Quantity int
}

type OrderService interface {
	CreateOrder(userEmail string, lines []OrderLine, token string) (*model.Order, error)
	PayOrder(orderID uuid.UUID, payerEmail string) (*model.Order, error)
	CancelOrder(orderID uuid.UUID, cancelledByEmail, token string) (*model.Order, error)
	GetOrder(orderID uuid.UUID, requesterEmail string, isAdmin bool) (*model.Order, error)
	ListOrders(requesterEmail string, isAdmin bool) ([]*model.Order, error)
}

func NewOrderService(repo model.OrderRepository, catalog CatalogClient, compensator *CompensationManager) OrderService {
	return &orderService{repo: repo, catalog: catalog, compensator: compensator}
}

type orderService struct {
	repo        model.OrderRepository
	catalog     CatalogClient
	compensator *CompensationManager
}

// CreateOrder reserves stock for every line and persists the order, in two
// passes. The validation pass reads every book and collects all failures
// before anything is mutated. The reservation pass decrements stock line by
// line, in request order; the first failed decrement stops the pass and the
// already reserved prefix is compensated. A persistence failure after a full
// reservation is compensated the same way, so stock is never left decremented
// without either an order or a reversal.
func (s *orderService) CreateOrder(userEmail string, lines []OrderLine, token string) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, model.ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
	}

	items, reasons := s.validateLines(lines, token)
	if len(reasons) > 0 {
		return nil, &ValidationError{Reasons: reasons}
	}

	ledger := NewReservationLedger()
	for _, item := range items {
		if err := s.catalog.DecrementStock(item.BookID, item.Quantity, token); err != nil {
			s.compensator.Compensate(ledger, token)
			return nil, &ReservationError{Reasons: []string{
				fmt.Sprintf("Failed to reserve stock for book id %s", item.BookID),
			}}
		}
		ledger.Record(item.BookID, item.Quantity)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	orderID, err := s.repo.NextID()
	if err != nil {
		s.compensator.Compensate(ledger, token)
		return nil, err
	}

	order := &model.Order{
		ID:         orderID,
		UserEmail:  userEmail,
		TotalPrice: total,
		Status:     model.Pending,
		CreatedAt:  time.Now().UTC(),
		Items:      items,
	}
	if err := s.repo.Create(order); err != nil {
		s.compensator.Compensate(ledger, token)
		return nil, err
	}

	return order, nil
}

// validateLines reads every book and checks availability. It never
// short-circuits: the caller gets the complete failure list in one response.
func (s *orderService) validateLines(lines []OrderLine, token string) ([]model.Item, []string) {
	var items []model.Item
	var reasons []string

	for _, line := range lines {
		snapshot, err := s.catalog.GetBook(line.BookID, token)
		switch {
		case errors.Is(err, ErrBookNotFound):
			reasons = append(reasons, fmt.Sprintf("Book not found with id %s", line.BookID))
			continue
		case err != nil:
			reasons = append(reasons, fmt.Sprintf("Failed to fetch book %s", line.BookID))
			continue
		}

		if snapshot.Stock < line.Quantity {
			reasons = append(reasons, fmt.Sprintf("Not enough stock for book id %s", line.BookID))
			continue
		}

		items = append(items, model.Item{BookID: line.BookID, Quantity: line.Quantity, Price: snapshot.Price})
	}

	return items, reasons
}

func (s *orderService) PayOrder(orderID uuid.UUID, payerEmail string) (*model.Order, error) {
	order, err := s.repo.Find(orderID)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(payerEmail) {
		return nil, model.ErrNotOrderOwner
	}

	changed, err := order.Pay()
	if err != nil {
		return nil, err
	}
	if !changed {
		return order, nil
	}

	if err := s.repo.UpdateStatus(order); err != nil {
		return nil, err
	}
	return order, nil
}

// CancelOrder is structurally a rollback of the original reservation: a
// pending order's items are incremented back through the same compensation
// path used when a createOrder fails mid-reservation.
func (s *orderService) CancelOrder(orderID uuid.UUID, cancelledByEmail, token string) (*model.Order, error) {
	order, err := s.repo.Find(orderID)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(cancelledByEmail) {
		return nil, model.ErrNotOrderOwner
	}

	changed, err := order.Cancel()
	if err != nil {
		return nil, err
	}
	if !changed {
		return order, nil
	}

	ledger := NewReservationLedger()
	for _, item := range order.Items {
		ledger.Record(item.BookID, item.Quantity)
	}
	s.compensator.Compensate(ledger, token)

	if err := s.repo.UpdateStatus(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(orderID uuid.UUID, requesterEmail string, isAdmin bool) (*model.Order, error) {
	order, err := s.repo.Find(orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !order.OwnedBy(requesterEmail) {
		return nil, model.ErrAccessDenied
	}
	return order, nil
}

func (s *orderService) ListOrders(requesterEmail string, isAdmin bool) ([]*model.Order, error) {
	if isAdmin {
		return s.repo.FindAll()
	}
	return s.repo.FindByUserEmail(requesterEmail)
}
