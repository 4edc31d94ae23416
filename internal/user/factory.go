package user

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

// Factory creates users with hashed passwords.
type Factory struct {
	hasher PasswordHasher
}

func NewFactory(hasher PasswordHasher) *Factory {
	return &Factory{hasher: hasher}
}

func (f *Factory) NewUser(username, email, password string, roles ...Role) (*User, error) {
	var v apperr.ValidationError

	validateIdentity(&v, username, email)
	v.CheckLength("password", password, 6, 64)
	if len(password) > maxPasswordBytes {
		v.Add("password", "must be at most %d bytes", maxPasswordBytes)
	}

	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := f.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Roles:        roles,
	}, nil
}
