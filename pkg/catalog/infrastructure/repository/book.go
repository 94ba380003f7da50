package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/model"
)

type BookRepository struct {
	db *sqlx.DB
}

func NewBookRepository(db *sqlx.DB) *BookRepository {
	return &BookRepository{db: db}
}

var _ model.BookRepository = &BookRepository{}

type bookRow struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Author      sql.NullString  `db:"author"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	Year        sql.NullInt64   `db:"year"`
	CategoryID  sql.NullString  `db:"category_id"`
	ImageBase64 sql.NullString  `db:"image_base64"`
}

func (r *BookRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *BookRepository) Create(book *model.Book) error {
	_, err := r.db.Exec(
		`INSERT INTO books (id, title, author, price, stock, year, category_id, image_base64) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID.String(), book.Title, book.Author, book.Price, book.Stock, book.Year, categoryArg(book.CategoryID), book.ImageBase64,
	)
	return errors.Wrapf(err, "insert book %s", book.ID)
}

func (r *BookRepository) Update(book *model.Book) error {
	res, err := r.db.Exec(
		`UPDATE books SET title = ?, author = ?, price = ?, stock = ?, year = ?, category_id = ?, image_base64 = ? WHERE id = ?`,
		book.Title, book.Author, book.Price, book.Stock, book.Year, categoryArg(book.CategoryID), book.ImageBase64, book.ID.String(),
	)
	if err != nil {
		return errors.Wrapf(err, "update book %s", book.ID)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) Find(id uuid.UUID) (*model.Book, error) {
	var row bookRow
	err := r.db.Get(&row,
		`SELECT id, title, author, price, stock, year, category_id, image_base64 FROM books WHERE id = ?`,
		id.String(),
	)
	if err == sql.ErrNoRows {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find book %s", id)
	}
	return hydrateBook(row)
}

func (r *BookRepository) List(filter model.BookFilter) (*model.BookPage, error) {
	where := "1 = 1"
	var args []interface{}

	if filter.Query != "" {
		where += " AND (LOWER(title) LIKE ? OR LOWER(author) LIKE ?)"
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		args = append(args, pattern, pattern)
	} else if filter.CategoryID != nil {
		where += " AND category_id = ?"
		args = append(args, filter.CategoryID.String())
	}

	var total int64
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM books WHERE "+where, args...); err != nil {
		return nil, errors.Wrap(err, "count books")
	}

	query := fmt.Sprintf(
		"SELECT id, title, author, price, stock, year, category_id, image_base64 FROM books WHERE %s ORDER BY title ASC LIMIT ? OFFSET ?",
		where,
	)
	args = append(args, filter.Size, filter.Page*filter.Size)

	var rows []bookRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select books")
	}

	books := make([]*model.Book, 0, len(rows))
	for _, row := range rows {
		book, err := hydrateBook(row)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	totalPages := int((total + int64(filter.Size) - 1) / int64(filter.Size))
	return &model.BookPage{
		Content:       books,
		Page:          filter.Page,
		Size:          filter.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (r *BookRepository) Delete(id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM books WHERE id = ?`, id.String())
	if err != nil {
		return errors.Wrapf(err, "delete book %s", id)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

// AdjustStock is a single conditional UPDATE, so concurrent decrements cannot
// oversell: the stock check and the write happen in one statement.
func (r *BookRepository) AdjustStock(id uuid.UUID, delta int) error {
	res, err := r.db.Exec(
		`UPDATE books SET stock = stock + ? WHERE id = ? AND stock + ? >= 0`,
		delta, id.String(), delta,
	)
	if err != nil {
		return errors.Wrapf(err, "adjust stock of book %s", id)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "adjust stock of book %s", id)
	}
	if affected > 0 {
		return nil
	}

	if _, err := r.Find(id); err != nil {
		return err
	}
	return model.ErrInsufficientStock
}

func categoryArg(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}

func hydrateBook(row bookRow) (*model.Book, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "parse book id %q", row.ID)
	}

	var categoryID *uuid.UUID
	if row.CategoryID.Valid {
		parsed, err := uuid.Parse(row.CategoryID.String)
		if err != nil {
			return nil, errors.Wrapf(err, "parse category id %q", row.CategoryID.String)
		}
		categoryID = &parsed
	}

	return &model.Book{
		ID:          id,
		Title:       row.Title,
		Author:      row.Author.String,
		Price:       row.Price,
		Stock:       row.Stock,
		Year:        int(row.Year.Int64),
		CategoryID:  categoryID,
		ImageBase64: row.ImageBase64.String,
	}, nil
}
