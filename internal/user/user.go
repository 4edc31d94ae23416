package user

import (
	"regexp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
)

var (
	ErrNotFound           = apperr.New(apperr.ErrNotFound, "USER_NOT_FOUND", "User not found")
	ErrAlreadyExists      = apperr.New(apperr.ErrAlreadyExists, "USER_ALREADY_EXISTS", "User already exists")
	ErrUsernameTaken      = apperr.New(apperr.ErrAlreadyExists, "USER_ALREADY_EXISTS", "User with this username already exists")
	ErrEmailTaken         = apperr.New(apperr.ErrAlreadyExists, "USER_ALREADY_EXISTS", "User with this email already exists")
	ErrInvalidCredentials = apperr.New(apperr.ErrInvalidCredentials, "INVALID_CREDENTIALS", "Invalid email or password")

	ErrRoleNotFound      = apperr.New(apperr.ErrNotFound, "ROLE_NOT_FOUND", "Role not found")
	ErrRoleAlreadyExists = apperr.New(apperr.ErrAlreadyExists, "ROLE_ALREADY_EXISTS", "Role with this name already exists")
	ErrRoleNotDeletable  = apperr.New(apperr.ErrNotDeletable, "ROLE_NOT_DELETABLE", "Role is still assigned to users")
)

// Well-known role names.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type Role struct {
	ID   uuid.UUID
	Name string
}

func NewRole(name string) (*Role, error) {
	var v apperr.ValidationError
	v.CheckLength("role_name", name, 3, 64)

	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Role{ID: uuid.New(), Name: name}, nil
}

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Roles        []Role
	CreatedAt    time.Time
}

func (u *User) Validate() error {
	var v apperr.ValidationError
	validateIdentity(&v, u.Username, u.Email)

	return v.Err()
}

func validateIdentity(v *apperr.ValidationError, username, email string) {
	v.CheckLength("username", username, 3, 64)
	if !usernamePattern.MatchString(username) {
		v.Add("username", "may contain only letters, digits and underscores")
	}
	v.CheckLength("email", email, 1, 100)
}

func (u *User) HasRole(name string) bool {
	return slices.ContainsFunc(u.Roles, func(r Role) bool { return r.Name == name })
}

func (u *User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}
