package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be a positive number")
	ErrNotOrderOwner      = errors.New("user email does not match order owner")
	ErrCannotPayCancelled = errors.New("cannot pay a cancelled order")
	ErrCannotCancelPaid   = errors.New("cannot cancel a paid order")
	ErrAccessDenied       = errors.New("access denied")
)

type OrderStatus string

const (
	Pending   OrderStatus = "PENDING"
	Paid      OrderStatus = "PAID"
	Cancelled OrderStatus = "CANCELLED"
)

// Order is created only after every item has been reserved in the catalog.
// The item list and the total are fixed at creation; prices are snapshots of
// the catalog prices observed during validation, not live references.
type Order struct {
	ID         uuid.UUID
	UserEmail  string
	TotalPrice decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
	Items      []Item
}

type Item struct {
	BookID   uuid.UUID
	Quantity int
	Price    decimal.Decimal
}

// OwnedBy reports whether email matches the order owner, ignoring case.
func (o *Order) OwnedBy(email string) bool {
	return strings.EqualFold(o.UserEmail, email)
}

// Pay moves the order to PAID. Paying an already paid order is an idempotent
// no-op (changed is false); paying a cancelled order is rejected.
func (o *Order) Pay() (changed bool, err error) {
	switch o.Status {
	case Paid:
		return false, nil
	case Cancelled:
		return false, ErrCannotPayCancelled
	}
	o.Status = Paid
	return true, nil
}

// Cancel moves the order to CANCELLED. Cancelling an already cancelled order
// is an idempotent no-op (changed is false); cancelling a paid order is
// rejected. When changed is true the caller must release the reserved stock.
func (o *Order) Cancel() (changed bool, err error) {
	switch o.Status {
	case Cancelled:
		return false, nil
	case Paid:
		return false, ErrCannotCancelPaid
	}
	o.Status = Cancelled
	return true, nil
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	UpdateStatus(order *Order) error
	FindAll() ([]*Order, error)
	FindByUserEmail(email string) ([]*Order, error)
}
