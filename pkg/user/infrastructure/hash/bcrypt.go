package hash

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/MuhammadRidhoO/Toko-Buku-Online/pkg/user/domain/model"
)

// BcryptPasswordManager implements model.PasswordManager with bcrypt.
type BcryptPasswordManager struct {
	cost int
}

func NewBcryptPasswordManager() *BcryptPasswordManager {
	return &BcryptPasswordManager{cost: bcrypt.DefaultCost}
}

var _ model.PasswordManager = &BcryptPasswordManager{}

func (m *BcryptPasswordManager) Hash(plainTextPassword string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), m.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (m *BcryptPasswordManager) Compare(hashedPassword, plainTextPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainTextPassword))
}
