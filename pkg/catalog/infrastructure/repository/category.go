package repository

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/model"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ model.CategoryRepository = &CategoryRepository{}

type categoryRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

func (r *CategoryRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *CategoryRepository) Create(category *model.Category) error {
	_, err := r.db.Exec(`INSERT INTO categories (id, name) VALUES (?, ?)`, category.ID.String(), category.Name)
	return errors.Wrapf(err, "insert category %s", category.ID)
}

func (r *CategoryRepository) Update(category *model.Category) error {
	res, err := r.db.Exec(`UPDATE categories SET name = ? WHERE id = ?`, category.Name, category.ID.String())
	if err != nil {
		return errors.Wrapf(err, "update category %s", category.ID)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	var row categoryRow
	err := r.db.Get(&row, `SELECT id, name FROM categories WHERE id = ?`, id.String())
	if err == sql.ErrNoRows {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find category %s", id)
	}

	parsed, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "parse category id %q", row.ID)
	}
	return &model.Category{ID: parsed, Name: row.Name}, nil
}

func (r *CategoryRepository) FindAll() ([]*model.Category, error) {
	var rows []categoryRow
	if err := r.db.Select(&rows, `SELECT id, name FROM categories ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "select categories")
	}

	categories := make([]*model.Category, 0, len(rows))
	for _, row := range rows {
		parsed, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "parse category id %q", row.ID)
		}
		categories = append(categories, &model.Category{ID: parsed, Name: row.Name})
	}
	return categories, nil
}

func (r *CategoryRepository) Delete(id uuid.UUID) error {
	res, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id.String())
	if err != nil {
		return errors.Wrapf(err, "delete category %s", id)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}
