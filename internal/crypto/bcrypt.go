// Package crypto hashes and verifies user passwords.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt implements user.PasswordHasher.
type Bcrypt struct {
	cost int
}

// NewBcrypt uses bcrypt.DefaultCost when cost is out of range.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (b *Bcrypt) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
