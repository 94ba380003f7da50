package model

import "github.com/google/uuid"

type Category struct {
	ID   uuid.UUID
	Name string
}

type CategoryRepository interface {
	NextID() (uuid.UUID, error)
	Create(category *Category) error
	Update(category *Category) error
	Find(id uuid.UUID) (*Category, error)
	FindAll() ([]*Category, error)
	Delete(id uuid.UUID) error
}
