package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already used")
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID             uuid.UUID
	Name           string
	Email          string
	HashedPassword string
	Role           string
	CreatedAt      time.Time
}

type UserRepository interface {
	NextID() (uuid.UUID, error)
	Create(user *User) error
	FindByEmail(email string) (*User, error)
}

// PasswordManager hashes and verifies user passwords.
type PasswordManager interface {
	Hash(plainTextPassword string) (string, error)
	Compare(hashedPassword, plainTextPassword string) error
}
