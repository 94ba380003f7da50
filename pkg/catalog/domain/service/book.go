package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/model"
)

var (
	ErrInvalidStockQuantity = errors.New("stock quantity must be a positive number")
	ErrNegativePrice        = errors.New("price cannot be negative")
	ErrNegativeStock        = errors.New("stock cannot be negative")
	ErrTitleRequired        = errors.New("title is required")
)

// NewBook holds the fields of a book to create.
type NewBook struct {
	Title       string
	Author      string
	Price       decimal.Decimal
	Stock       int
	Year        int
	CategoryID  *uuid.UUID
	ImageBase64 string
}

// BookUpdate is a partial update; nil fields keep their current value.
type BookUpdate struct {
	Title       *string
	Author      *string
	Price       *decimal.Decimal
	Stock       *int
	Year        *int
	CategoryID  *uuid.UUID
	ImageBase64 *string
}

type BookService interface {
	CreateBook(book NewBook) (*model.Book, error)
	ListBooks(filter model.BookFilter) (*model.BookPage, error)
	GetBook(id uuid.UUID) (*model.Book, error)
	UpdateBook(id uuid.UUID, update BookUpdate) (*model.Book, error)
	DeleteBook(id uuid.UUID) (*model.Book, error)
	DecrementStock(id uuid.UUID, quantity int) (*model.Book, error)
	IncrementStock(id uuid.UUID, quantity int) (*model.Book, error)
}

func NewBookService(books model.BookRepository, categories model.CategoryRepository) BookService {
	return &bookService{books: books, categories: categories}
}

type bookService struct {
	books      model.BookRepository
	categories model.CategoryRepository
}

func (s *bookService) CreateBook(book NewBook) (*model.Book, error) {
	if book.Title == "" {
		return nil, ErrTitleRequired
	}
	if book.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if book.Stock < 0 {
		return nil, ErrNegativeStock
	}
	if book.CategoryID != nil {
		if _, err := s.categories.Find(*book.CategoryID); err != nil {
			return nil, err
		}
	}

	bookID, err := s.books.NextID()
	if err != nil {
		return nil, err
	}

	created := &model.Book{
		ID:          bookID,
		Title:       book.Title,
		Author:      book.Author,
		Price:       book.Price,
		Stock:       book.Stock,
		Year:        book.Year,
		CategoryID:  book.CategoryID,
		ImageBase64: book.ImageBase64,
	}
	if err := s.books.Create(created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *bookService) ListBooks(filter model.BookFilter) (*model.BookPage, error) {
	if filter.Size <= 0 {
		filter.Size = 10
	}
	if filter.Page < 0 {
		filter.Page = 0
	}
	return s.books.List(filter)
}

func (s *bookService) GetBook(id uuid.UUID) (*model.Book, error) {
	return s.books.Find(id)
}

func (s *bookService) UpdateBook(id uuid.UUID, update BookUpdate) (*model.Book, error) {
	book, err := s.books.Find(id)
	if err != nil {
		return nil, err
	}

	if update.CategoryID != nil {
		if _, err := s.categories.Find(*update.CategoryID); err != nil {
			return nil, err
		}
		book.CategoryID = update.CategoryID
	}
	if update.Title != nil && *update.Title != "" {
		book.Title = *update.Title
	}
	if update.Author != nil && *update.Author != "" {
		book.Author = *update.Author
	}
	if update.Price != nil {
		if update.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		book.Price = *update.Price
	}
	if update.Stock != nil {
		if *update.Stock < 0 {
			return nil, ErrNegativeStock
		}
		book.Stock = *update.Stock
	}
	if update.Year != nil {
		book.Year = *update.Year
	}
	if update.ImageBase64 != nil && *update.ImageBase64 != "" {
		book.ImageBase64 = *update.ImageBase64
	}

	if err := s.books.Update(book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) DeleteBook(id uuid.UUID) (*model.Book, error) {
	book, err := s.books.Find(id)
	if err != nil {
		return nil, err
	}
	if err := s.books.Delete(id); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *bookService) DecrementStock(id uuid.UUID, quantity int) (*model.Book, error) {
	return s.adjustStock(id, quantity, -1)
}

func (s *bookService) IncrementStock(id uuid.UUID, quantity int) (*model.Book, error) {
	return s.adjustStock(id, quantity, 1)
}

func (s *bookService) adjustStock(id uuid.UUID, quantity, sign int) (*model.Book, error) {
	if quantity <= 0 {
		return nil, ErrInvalidStockQuantity
	}
	if err := s.books.AdjustStock(id, sign*quantity); err != nil {
		return nil, err
	}
	return s.books.Find(id)
}
