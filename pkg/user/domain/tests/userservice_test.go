package tests

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/user/domain/model"
	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/user/domain/service"
)

type mockUserRepository struct {
	store     map[string]*model.User
	createErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{store: map[string]*model.User{}}
}

func (m *mockUserRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockUserRepository) Create(user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.store[strings.ToLower(user.Email)] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(email string) (*model.User, error) {
	user, ok := m.store[strings.ToLower(email)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

type fakePasswordManager struct{}

func (fakePasswordManager) Hash(plainTextPassword string) (string, error) {
	return "hashed:" + plainTextPassword, nil
}

func (fakePasswordManager) Compare(hashedPassword, plainTextPassword string) error {
	if hashedPassword != "hashed:"+plainTextPassword {
		return errors.New("mismatch")
	}
	return nil
}

type stubTokenIssuer struct {
	issued []string
	err    error
}

func (s *stubTokenIssuer) Issue(email, role, name string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	token := "token-for-" + email
	s.issued = append(s.issued, token)
	return token, nil
}

func setup(t *testing.T) (service.UserService, *mockUserRepository, *stubTokenIssuer) {
	t.Helper()
	repo := newMockUserRepository()
	tokens := &stubTokenIssuer{}
	return service.NewUserService(repo, fakePasswordManager{}, tokens), repo, tokens
}

func TestRegister(t *testing.T) {
	userService, repo, _ := setup(t)

	user, err := userService.Register("Budi", "Budi@Example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "hashed:secret-password", user.HashedPassword)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Contains(t, repo.store, "budi@example.com")
}

func TestRegisterValidation(t *testing.T) {
	userService, _, _ := setup(t)

	_, err := userService.Register("", "budi@example.com", "secret-password")
	assert.ErrorIs(t, err, service.ErrNameRequired)

	_, err = userService.Register("Budi", "", "secret-password")
	assert.ErrorIs(t, err, service.ErrEmailRequired)

	_, err = userService.Register("Budi", "budi@example.com", "short")
	assert.ErrorIs(t, err, service.ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userService, _, _ := setup(t)

	_, err := userService.Register("Budi", "budi@example.com", "secret-password")
	require.NoError(t, err)

	_, err = userService.Register("Other Budi", "BUDI@example.com", "another-password")
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	userService, _, tokens := setup(t)

	_, err := userService.Register("Budi", "budi@example.com", "secret-password")
	require.NoError(t, err)

	user, token, err := userService.Login("budi@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)
	assert.Equal(t, "token-for-budi@example.com", token)
	assert.Len(t, tokens.issued, 1)
}

func TestLoginUnknownEmail(t *testing.T) {
	userService, _, _ := setup(t)

	_, _, err := userService.Login("nobody@example.com", "secret-password")
	assert.ErrorIs(t, err, service.ErrEmailNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	userService, _, tokens := setup(t)

	_, err := userService.Register("Budi", "budi@example.com", "secret-password")
	require.NoError(t, err)

	_, _, err = userService.Login("budi@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrWrongPassword)
	assert.Empty(t, tokens.issued)
}

func TestGetByEmail(t *testing.T) {
	userService, _, _ := setup(t)

	_, err := userService.Register("Budi", "budi@example.com", "secret-password")
	require.NoError(t, err)

	user, err := userService.GetByEmail("budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Budi", user.Name)

	_, err = userService.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}
