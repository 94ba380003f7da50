package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/catalog/domain/model"
)

var ErrCategoryNameRequired = errors.New("category name is required")

type CategoryService interface {
	CreateCategory(name string) (*model.Category, error)
	ListCategories() ([]*model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	UpdateCategory(id uuid.UUID, name string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) (*model.Category, error)
}

func NewCategoryService(categories model.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

type categoryService struct {
	categories model.CategoryRepository
}

func (s *categoryService) CreateCategory(name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	categoryID, err := s.categories.NextID()
	if err != nil {
		return nil, err
	}

	category := &model.Category{ID: categoryID, Name: name}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories() ([]*model.Category, error) {
	return s.categories.FindAll()
}

func (s *categoryService) GetCategory(id uuid.UUID) (*model.Category, error) {
	return s.categories.Find(id)
}

func (s *categoryService) UpdateCategory(id uuid.UUID, name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	category, err := s.categories.Find(id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	if err := s.categories.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categories.Find(id)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Delete(id); err != nil {
		return nil, err
	}
	return category, nil
}
