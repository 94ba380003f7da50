package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/model"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/service"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/auth"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/envelope"
	commontransport "github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/common/transport"
)

func Router(books service.BookService, categories service.CategoryService, tokens *auth.TokenManager) http.Handler {
	h := &handler{books: books, categories: categories}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()
	s.Use(tokens.Middleware)

	s.HandleFunc("/books", h.createBook).Methods(http.MethodPost)
	s.HandleFunc("/books", h.listBooks).Methods(http.MethodGet)
	s.HandleFunc("/books/{ID}", h.getBook).Methods(http.MethodGet)
	s.HandleFunc("/books/{ID}", h.updateBook).Methods(http.MethodPut)
	s.HandleFunc("/books/{ID}", h.deleteBook).Methods(http.MethodDelete)
	s.HandleFunc("/books/{ID}/decrement", h.decrementStock).Methods(http.MethodPost)
	s.HandleFunc("/books/{ID}/increment", h.incrementStock).Methods(http.MethodPost)

	s.HandleFunc("/categories", h.createCategory).Methods(http.MethodPost)
	s.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)
	s.HandleFunc("/categories/{ID}", h.getCategory).Methods(http.MethodGet)
	s.HandleFunc("/categories/{ID}", h.updateCategory).Methods(http.MethodPut)
	s.HandleFunc("/categories/{ID}", h.deleteCategory).Methods(http.MethodDelete)

	return commontransport.LogMiddleware(r)
}

type handler struct {
	books      service.BookService
	categories service.CategoryService
}

type bookRequest struct {
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Year        int             `json:"year"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	ImageBase64 string          `json:"image_base64"`
}

type bookUpdateRequest struct {
	Title       *string          `json:"title"`
	Author      *string          `json:"author"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Year        *int             `json:"year"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	ImageBase64 *string          `json:"image_base64"`
}

type bookResponse struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Year        int             `json:"year"`
	CategoryID  *uuid.UUID      `json:"category_id"`
	ImageBase64 string          `json:"image_base64,omitempty"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (h *handler) createBook(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"invalid request body"})
		return
	}

	book, err := h.books.CreateBook(service.NewBook{
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Stock:       req.Stock,
		Year:        req.Year,
		CategoryID:  req.CategoryID,
		ImageBase64: req.ImageBase64,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Success to Create Book", toBookResponse(book))
}

func (h *handler) listBooks(w http.ResponseWriter, r *http.Request) {
	filter := model.BookFilter{
		Query: r.URL.Query().Get("q"),
		Page:  queryInt(r, "page", 0),
		Size:  queryInt(r, "size", 10),
	}
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"invalid category id"})
			return
		}
		filter.CategoryID = &categoryID
	}

	page, err := h.books.ListBooks(filter)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	content := make([]bookResponse, 0, len(page.Content))
	for _, book := range page.Content {
		content = append(content, toBookResponse(book))
	}

	envelope.WriteSuccess(w, "Success to get list book", map[string]interface{}{
		"content":       content,
		"page":          page.Page,
		"size":          page.Size,
		"totalElements": page.TotalElements,
		"totalPages":    page.TotalPages,
	})
}

func (h *handler) getBook(w http.ResponseWriter, r *http.Request) {
	bookID, ok := parseID(w, r)
	if !ok {
		return
	}

	book, err := h.books.GetBook(bookID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Success to get book", toBookResponse(book))
}

func (h *handler) updateBook(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	bookID, ok := parseID(w, r)
	if !ok {
		return
	}

	var req bookUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"invalid request body"})
		return
	}

	book, err := h.books.UpdateBook(bookID, service.BookUpdate{
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Stock:       req.Stock,
		Year:        req.Year,
		CategoryID:  req.CategoryID,
		ImageBase64: req.ImageBase64,
	})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Success to update book", toBookResponse(book))
}

func (h *handler) deleteBook(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	bookID, ok := parseID(w, r)
	if !ok {
		return
	}

	book, err := h.books.DeleteBook(bookID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Success to delete book", toBookResponse(book))
}

func (h *handler) decrementStock(w http.ResponseWriter, r *http.Request) {
	h.adjustStock(w, r, h.books.DecrementStock, "Stock decremented", "Failed to decrement stock")
}

func (h *handler) incrementStock(w http.ResponseWriter, r *http.Request) {
	h.adjustStock(w, r, h.books.IncrementStock, "Stock incremented", "Failed to increment stock")
}

func (h *handler) adjustStock(w http.ResponseWriter, r *http.Request, adjust func(uuid.UUID, int) (*model.Book, error), successMessage, failureMessage string) {
	bookID, ok := parseID(w, r)
	if !ok {
		return
	}

	qty, err := strconv.Atoi(r.URL.Query().Get("qty"))
	if err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, failureMessage, []string{"qty must be an integer"})
		return
	}

	book, err := adjust(bookID, qty)
	if err != nil {
		if errors.Is(err, model.ErrInsufficientStock) {
			envelope.WriteFailure(w, http.StatusBadRequest, failureMessage, []string{
				fmt.Sprintf("Not enough stock for book id %s", bookID),
			})
			return
		}
		if errors.Is(err, service.ErrInvalidStockQuantity) {
			envelope.WriteFailure(w, http.StatusBadRequest, failureMessage, []string{err.Error()})
			return
		}
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, successMessage, toBookResponse(book))
}

func (h *handler) createCategory(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"invalid request body"})
		return
	}

	category, err := h.categories.CreateCategory(req.Name)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Success to Create Category", categoryResponse{ID: category.ID, Name: category.Name})
}

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories()
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	responses := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, categoryResponse{ID: category.ID, Name: category.Name})
	}

	envelope.WriteSuccess(w, "Success to get list category", responses)
}

func (h *handler) getCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseID(w, r)
	if !ok {
		return
	}

	category, err := h.categories.GetCategory(categoryID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Success to get category", categoryResponse{ID: category.ID, Name: category.Name})
}

func (h *handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	categoryID, ok := parseID(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"invalid request body"})
		return
	}

	category, err := h.categories.UpdateCategory(categoryID, req.Name)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Success to update category", categoryResponse{ID: category.ID, Name: category.Name})
}

func (h *handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	categoryID, ok := parseID(w, r)
	if !ok {
		return
	}

	category, err := h.categories.DeleteCategory(categoryID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	envelope.WriteSuccess(w, "Success to delete category", categoryResponse{ID: category.ID, Name: category.Name})
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil || !claims.IsAdmin() {
		envelope.WriteFailure(w, http.StatusBadRequest, "Invalid credentials", []string{"Access denied"})
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["ID"])
	if err != nil {
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{"invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		envelope.WriteFailure(w, http.StatusNotFound, "Book not found", []string{"BOOK NOT FOUND"})
	case errors.Is(err, model.ErrCategoryNotFound):
		envelope.WriteFailure(w, http.StatusNotFound, "Category not found", []string{"CATEGORY NOT FOUND"})
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrNegativeStock),
		errors.Is(err, service.ErrCategoryNameRequired):
		envelope.WriteFailure(w, http.StatusBadRequest, "Validation failed", []string{err.Error()})
	default:
		log.WithError(err).Error("catalog request failed")
		envelope.WriteFailure(w, http.StatusInternalServerError, "Internal error", []string{err.Error()})
	}
}

func toBookResponse(book *model.Book) bookResponse {
	return bookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Price:       book.Price,
		Stock:       book.Stock,
		Year:        book.Year,
		CategoryID:  book.CategoryID,
		ImageBase64: book.ImageBase64,
	}
}
