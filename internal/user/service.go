package user

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/apperr"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	// CreateUser stores u together with its roles.
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	AttachRole(ctx context.Context, userID, roleID uuid.UUID) error
	DetachRole(ctx context.Context, userID, roleID uuid.UUID) error
}

type RoleRepository interface {
	CreateRole(ctx context.Context, r *Role) error
	GetRole(ctx context.Context, id uuid.UUID) (*Role, error)
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	ListRoles(ctx context.Context) ([]*Role, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type Service struct {
	users    Repository
	roles    RoleRepository
	hasher   PasswordHasher
	factory  *Factory
	tx       database.Transactor
	validate *validator.Validate
}

func NewService(users Repository, roles RoleRepository, hasher PasswordHasher, tx database.Transactor) *Service {
	return &Service{
		users:    users,
		roles:    roles,
		hasher:   hasher,
		factory:  NewFactory(hasher),
		tx:       tx,
		validate: validator.New(),
	}
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// Register creates a user holding the member role.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	email := normalizeEmail(params.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apperr.Invalid("email", "must be a valid email address")
	}

	var u *User

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureFree(ctx, params.Username, email); err != nil {
			return err
		}

		member, err := s.ensureRole(ctx, RoleMember)
		if err != nil {
			return err
		}

		u, err = s.factory.NewUser(params.Username, email, params.Password, *member)
		if err != nil {
			return err
		}

		return s.users.CreateUser(ctx, u)
	})
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	return u, nil
}

func (s *Service) ensureFree(ctx context.Context, username, email string) error {
	_, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, ErrNotFound):
		return err
	}

	_, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, ErrNotFound):
		return err
	}

	return nil
}

// ensureRole returns the named role, creating it on first use.
func (s *Service) ensureRole(ctx context.Context, name string) (*Role, error) {
	role, err := s.roles.GetRoleByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, ErrRoleNotFound) {
		return nil, err
	}

	role, err = NewRole(name)
	if err != nil {
		return nil, err
	}

	if err := s.roles.CreateRole(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

// Login reports ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetUser(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetUser(ctx, id); err != nil {
			return err
		}

		return s.users.DeleteUser(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return nil
}

// GrantRole is a no-op when the user already holds the role.
func (s *Service) GrantRole(ctx context.Context, email, roleName string) (*User, error) {
	var u *User

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if u, err = s.users.GetUserByEmail(ctx, normalizeEmail(email)); err != nil {
			return err
		}

		if u.HasRole(roleName) {
			return nil
		}

		role, err := s.ensureRole(ctx, roleName)
		if err != nil {
			return err
		}

		if err := s.users.AttachRole(ctx, u.ID, role.ID); err != nil {
			return err
		}

		u.Roles = append(u.Roles, *role)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("granting role %q: %w", roleName, err)
	}

	return u, nil
}

func (s *Service) RevokeRole(ctx context.Context, email, roleName string) (*User, error) {
	var u *User

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if u, err = s.users.GetUserByEmail(ctx, normalizeEmail(email)); err != nil {
			return err
		}

		role, err := s.roles.GetRoleByName(ctx, roleName)
		if err != nil {
			return err
		}

		if err := s.users.DetachRole(ctx, u.ID, role.ID); err != nil {
			return err
		}

		u.Roles = slices.DeleteFunc(u.Roles, func(r Role) bool { return r.ID == role.ID })

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("revoking role %q: %w", roleName, err)
	}

	return u, nil
}

func (s *Service) CreateRole(ctx context.Context, name string) (*Role, error) {
	role, err := NewRole(name)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.roles.CreateRole(ctx, role)
	})
	if err != nil {
		return nil, fmt.Errorf("creating role: %w", err)
	}

	return role, nil
}

func (s *Service) ListRoles(ctx context.Context) ([]*Role, error) {
	return s.roles.ListRoles(ctx)
}

// DeleteRole fails with ErrRoleNotDeletable while any user holds the role.
func (s *Service) DeleteRole(ctx context.Context, name string) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		role, err := s.roles.GetRoleByName(ctx, name)
		if err != nil {
			return err
		}

		return s.roles.DeleteRole(ctx, role.ID)
	})
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
