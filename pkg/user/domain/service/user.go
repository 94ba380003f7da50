package service

import (
	"errors"
	"strings"
	"time"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/user/domain/model"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrNameRequired     = errors.New("name is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailNotFound    = errors.New("email not found")
	ErrWrongPassword    = errors.New("wrong password")
)

const minPasswordLength = 8

// TokenIssuer signs an access token for an authenticated user.
type TokenIssuer interface {
	Issue(email, role, name string) (string, error)
}

type UserService interface {
	Register(name, email, plainTextPassword string) (*model.User, error)
	Login(email, plainTextPassword string) (*model.User, string, error)
	GetByEmail(email string) (*model.User, error)
}

func NewUserService(repo model.UserRepository, passManager model.PasswordManager, tokens TokenIssuer) UserService {
	return &userService{repo: repo, passManager: passManager, tokens: tokens}
}

type userService struct {
	repo        model.UserRepository
	passManager model.PasswordManager
	tokens      TokenIssuer
}

func (s *userService) Register(name, email, plainTextPassword string) (*model.User, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(plainTextPassword) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.FindByEmail(email); err == nil {
		return nil, model.ErrEmailTaken
	}

	hashedPassword, err := s.passManager.Hash(plainTextPassword)
	if err != nil {
		return nil, err
	}

	userID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             userID,
		Name:           name,
		Email:          strings.ToLower(email),
		HashedPassword: hashedPassword,
		Role:           model.RoleUser,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(email, plainTextPassword string) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, "", ErrEmailNotFound
	}

	if err := s.passManager.Compare(user.HashedPassword, plainTextPassword); err != nil {
		return nil, "", ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.Email, user.Role, user.Name)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *userService) GetByEmail(email string) (*model.User, error) {
	return s.repo.FindByEmail(email)
}
