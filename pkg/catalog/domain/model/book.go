package model

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrInsufficientStock = errors.New("not enough stock")
)

type Book struct {
	ID          uuid.UUID
	Title       string
	Author      string
	Price       decimal.Decimal
	Stock       int
	Year        int
	CategoryID  *uuid.UUID
	ImageBase64 string
}

type BookFilter struct {
	Query      string
	CategoryID *uuid.UUID
	Page       int
	Size       int
}

type BookPage struct {
	Content       []*Book
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

type BookRepository interface {
	NextID() (uuid.UUID, error)
	Create(book *Book) error
	Update(book *Book) error
	Find(id uuid.UUID) (*Book, error)
	List(filter BookFilter) (*BookPage, error)
	Delete(id uuid.UUID) error
	// AdjustStock applies delta atomically and fails with
	// ErrInsufficientStock when the result would go negative. This is the
	// check-and-decrement the order saga relies on.
	AdjustStock(id uuid.UUID, delta int) error
}
