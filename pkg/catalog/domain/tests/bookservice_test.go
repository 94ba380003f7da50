package tests

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/model"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/service"
)

func setup(t *testing.T) (service.BookService, *mockBookRepository, *mockCategoryRepository) {
	t.Helper()
	books := &mockBookRepository{store: make(map[uuid.UUID]*model.Book)}
	categories := &mockCategoryRepository{store: make(map[uuid.UUID]*model.Category)}
	return service.NewBookService(books, categories), books, categories
}

func TestCreateBook(t *testing.T) {
	bookService, books, categories := setup(t)

	t.Run("Success", func(t *testing.T) {
		book, err := bookService.CreateBook(service.NewBook{
			Title:  "The Go Programming Language",
			Author: "Donovan",
			Price:  decimal.RequireFromString("42.00"),
			Stock:  10,
			Year:   2015,
		})

		require.NoError(t, err)
		assert.Equal(t, "The Go Programming Language", book.Title)
		_, ok := books.store[book.ID]
		assert.True(t, ok)
	})

	t.Run("Fail without title", func(t *testing.T) {
		_, err := bookService.CreateBook(service.NewBook{Price: decimal.New(1, 0), Stock: 1})
		assert.ErrorIs(t, err, service.ErrTitleRequired)
	})

	t.Run("Fail on negative price", func(t *testing.T) {
		_, err := bookService.CreateBook(service.NewBook{Title: "x", Price: decimal.New(-1, 0)})
		assert.ErrorIs(t, err, service.ErrNegativePrice)
	})

	t.Run("Fail on unknown category", func(t *testing.T) {
		unknown := uuid.New()
		_, err := bookService.CreateBook(service.NewBook{
			Title:      "x",
			Price:      decimal.New(1, 0),
			CategoryID: &unknown,
		})
		assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	})

	t.Run("Success with category", func(t *testing.T) {
		category := &model.Category{ID: uuid.New(), Name: "Programming"}
		categories.store[category.ID] = category

		book, err := bookService.CreateBook(service.NewBook{
			Title:      "x",
			Price:      decimal.New(1, 0),
			CategoryID: &category.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, book.CategoryID)
		assert.Equal(t, category.ID, *book.CategoryID)
	})
}

func TestUpdateBookPartial(t *testing.T) {
	bookService, books, _ := setup(t)
	book, err := bookService.CreateBook(service.NewBook{
		Title:  "Old Title",
		Author: "Old Author",
		Price:  decimal.RequireFromString("10.00"),
		Stock:  5,
	})
	require.NoError(t, err)

	newTitle := "New Title"
	updated, err := bookService.UpdateBook(book.ID, service.BookUpdate{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "Old Author", updated.Author, "unset fields keep their value")
	assert.Equal(t, 5, updated.Stock)
	assert.Equal(t, "New Title", books.store[book.ID].Title)
}

func TestDecrementStock(t *testing.T) {
	bookService, books, _ := setup(t)
	book, err := bookService.CreateBook(service.NewBook{
		Title: "x",
		Price: decimal.RequireFromString("10.00"),
		Stock: 3,
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		updated, err := bookService.DecrementStock(book.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Stock)
	})

	t.Run("Fail on insufficient stock", func(t *testing.T) {
		_, err := bookService.DecrementStock(book.ID, 2)
		assert.ErrorIs(t, err, model.ErrInsufficientStock)
		assert.Equal(t, 1, books.store[book.ID].Stock, "failed decrement must not change stock")
	})

	t.Run("Fail on non-positive quantity", func(t *testing.T) {
		_, err := bookService.DecrementStock(book.ID, 0)
		assert.ErrorIs(t, err, service.ErrInvalidStockQuantity)
	})

	t.Run("Fail on unknown book", func(t *testing.T) {
		_, err := bookService.DecrementStock(uuid.New(), 1)
		assert.ErrorIs(t, err, model.ErrBookNotFound)
	})
}

func TestIncrementStock(t *testing.T) {
	bookService, _, _ := setup(t)
	book, err := bookService.CreateBook(service.NewBook{
		Title: "x",
		Price: decimal.RequireFromString("10.00"),
		Stock: 1,
	})
	require.NoError(t, err)

	updated, err := bookService.IncrementStock(book.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Stock)
}

func TestListBooksFilters(t *testing.T) {
	bookService, _, _ := setup(t)
	for _, title := range []string{"Go in Action", "Learning Python", "The Go Programming Language"} {
		_, err := bookService.CreateBook(service.NewBook{Title: title, Price: decimal.New(1, 0), Stock: 1})
		require.NoError(t, err)
	}

	page, err := bookService.ListBooks(model.BookFilter{Query: "go", Size: 10})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(2), page.TotalElements)
}

var _ model.BookRepository = &mockBookRepository{}

type mockBookRepository struct {
	store map[uuid.UUID]*model.Book
}

func (m *mockBookRepository) NextID() (uuid.UUID, error) { return uuid.NewRandom() }

func (m *mockBookRepository) Create(book *model.Book) error {
	clone := *book
	m.store[book.ID] = &clone
	return nil
}

func (m *mockBookRepository) Update(book *model.Book) error {
	if _, ok := m.store[book.ID]; !ok {
		return model.ErrBookNotFound
	}
	clone := *book
	m.store[book.ID] = &clone
	return nil
}

func (m *mockBookRepository) Find(id uuid.UUID) (*model.Book, error) {
	book, ok := m.store[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	clone := *book
	return &clone, nil
}

func (m *mockBookRepository) List(filter model.BookFilter) (*model.BookPage, error) {
	var content []*model.Book
	for _, book := range m.store {
		if filter.Query != "" && !strings.Contains(strings.ToLower(book.Title), strings.ToLower(filter.Query)) {
			continue
		}
		clone := *book
		content = append(content, &clone)
	}
	return &model.BookPage{
		Content:       content,
		Page:          filter.Page,
		Size:          filter.Size,
		TotalElements: int64(len(content)),
		TotalPages:    1,
	}, nil
}

func (m *mockBookRepository) Delete(id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockBookRepository) AdjustStock(id uuid.UUID, delta int) error {
	book, ok := m.store[id]
	if !ok {
		return model.ErrBookNotFound
	}
	if book.Stock+delta < 0 {
		return model.ErrInsufficientStock
	}
	book.Stock += delta
	return nil
}

var _ model.CategoryRepository = &mockCategoryRepository{}

type mockCategoryRepository struct {
	store map[uuid.UUID]*model.Category
}

func (m *mockCategoryRepository) NextID() (uuid.UUID, error) { return uuid.NewRandom() }

func (m *mockCategoryRepository) Create(category *model.Category) error {
	m.store[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Update(category *model.Category) error {
	if _, ok := m.store[category.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	m.store[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	category, ok := m.store[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) FindAll() ([]*model.Category, error) {
	var categories []*model.Category
	for _, category := range m.store {
		categories = append(categories, category)
	}
	return categories, nil
}

func (m *mockCategoryRepository) Delete(id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrCategoryNotFound
	}
	delete(m.store, id)
	return nil
}
