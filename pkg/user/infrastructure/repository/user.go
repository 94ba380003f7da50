package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/user/domain/model"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ model.UserRepository = &UserRepository{}

type userRow struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Role           string    `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r *UserRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *UserRepository) Create(user *model.User) error {
	_, err := r.db.Exec(
		`INSERT INTO users (id, name, email, hashed_password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID.String(), user.Name, user.Email, user.HashedPassword, user.Role, user.CreatedAt,
	)
	return errors.Wrapf(err, "insert user %s", user.ID)
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var row userRow
	err := r.db.Get(&row,
		`SELECT id, name, email, hashed_password, role, created_at FROM users WHERE LOWER(email) = LOWER(?)`,
		email,
	)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find user by email %q", email)
	}

	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "parse user id %q", row.ID)
	}

	return &model.User{
		ID:             id,
		Name:           row.Name,
		Email:          row.Email,
		HashedPassword: row.HashedPassword,
		Role:           row.Role,
		CreatedAt:      row.CreatedAt,
	}, nil
}
