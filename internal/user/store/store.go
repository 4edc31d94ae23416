package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fintrack/internal/database"
	"github.com/MrJamesThe3rd/fintrack/internal/user"
)

// Store persists users and roles.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectUserColumns = `id, username, email, password_hash, created_at`

func scanUser(s scanner) (*user.User, error) {
	var u user.User
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	conn := database.Conn(ctx, s.db)

	query := `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at
	`

	err := conn.QueryRowContext(ctx, query, u.ID, u.Username, u.Email, u.PasswordHash).Scan(&u.CreatedAt)
	if database.IsUniqueViolation(err) {
		return user.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}

	for _, r := range u.Roles {
		if err := attachRole(ctx, conn, u.ID, r.ID); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.getOne(ctx, `SELECT `+selectUserColumns+` FROM users WHERE id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getOne(ctx, `SELECT `+selectUserColumns+` FROM users WHERE email = $1`, email)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.getOne(ctx, `SELECT `+selectUserColumns+` FROM users WHERE username = $1`, username)
}

func (s *Store) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	conn := database.Conn(ctx, s.db)

	u, err := scanUser(conn.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if u.Roles, err = rolesOf(ctx, conn, u.ID); err != nil {
		return nil, err
	}

	return u, nil
}

func rolesOf(ctx context.Context, conn database.Executor, userID uuid.UUID) ([]user.Role, error) {
	query := `
		SELECT r.id, r.role_name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.role_name
	`

	rows, err := conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing user roles: %w", err)
	}
	defer rows.Close()

	var roles []user.Role
	for rows.Next() {
		var r user.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}

		roles = append(roles, r)
	}

	return roles, rows.Err()
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (s *Store) AttachRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return attachRole(ctx, database.Conn(ctx, s.db), userID, roleID)
}

func attachRole(ctx context.Context, conn database.Executor, userID, roleID uuid.UUID) error {
	query := `
		INSERT INTO user_roles (user_id, role_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING
	`

	_, err := conn.ExecContext(ctx, query, userID, roleID)
	if database.IsForeignKeyViolation(err) {
		return user.ErrRoleNotFound
	}
	if err != nil {
		return fmt.Errorf("attaching role: %w", err)
	}

	return nil
}

func (s *Store) DetachRole(ctx context.Context, userID, roleID uuid.UUID) error {
	_, err := database.Conn(ctx, s.db).ExecContext(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	if err != nil {
		return fmt.Errorf("detaching role: %w", err)
	}

	return nil
}

func (s *Store) CreateRole(ctx context.Context, r *user.Role) error {
	query := `
		INSERT INTO roles (id, role_name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
	`

	_, err := database.Conn(ctx, s.db).ExecContext(ctx, query, r.ID, r.Name)
	if database.IsUniqueViolation(err) {
		return user.ErrRoleAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("inserting role: %w", err)
	}

	return nil
}

func (s *Store) GetRole(ctx context.Context, id uuid.UUID) (*user.Role, error) {
	return s.getRole(ctx, `SELECT id, role_name FROM roles WHERE id = $1`, id)
}

func (s *Store) GetRoleByName(ctx context.Context, name string) (*user.Role, error) {
	return s.getRole(ctx, `SELECT id, role_name FROM roles WHERE role_name = $1`, name)
}

func (s *Store) getRole(ctx context.Context, query string, arg any) (*user.Role, error) {
	var r user.Role

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, arg).Scan(&r.ID, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrRoleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting role: %w", err)
	}

	return &r, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]*user.Role, error) {
	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, `SELECT id, role_name FROM roles ORDER BY role_name`)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	var roles []*user.Role
	for rows.Next() {
		var r user.Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}

		roles = append(roles, &r)
	}

	return roles, rows.Err()
}

func (s *Store) DeleteRole(ctx context.Context, id uuid.UUID) error {
	res, err := database.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return user.ErrRoleNotDeletable
	}
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrRoleNotFound
	}

	return nil
}
