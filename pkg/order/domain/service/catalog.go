package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrBookNotFound = errors.New("book not found")

// BookSnapshot is the catalog state observed for one book during validation.
type BookSnapshot struct {
	Price decimal.Decimal
	Stock int
}

// CatalogClient is the remote catalog capability. Every call carries the
// caller's bearer token forwarded unchanged from the original request. The
// catalog is responsible for atomically checking and decrementing stock; this
// service adds no coordination of its own.
type CatalogClient interface {
	GetBook(bookID uuid.UUID, token string) (*BookSnapshot, error)
	DecrementStock(bookID uuid.UUID, quantity int, token string) error
	IncrementStock(bookID uuid.UUID, quantity int, token string) error
}
