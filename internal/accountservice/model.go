package accountservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/restory/restory/internal/authz"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrNotFound          = errors.New("account not found")
	ErrEditConflict      = errors.New("edit conflict")
)

func NewAccountModel(db *sql.DB) *AccountModel {
	return &AccountModel{db: db}
}

func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}
	return false
}

func (m *AccountModel) insert(ctx context.Context, a *Account) error {
	query := `
		INSERT INTO users (username, email, first_name, last_name, bio, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version`

	args := []any{a.Username, a.Email, a.FirstName, a.LastName, a.Bio, string(a.Role)}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.Version)
	if err != nil {
		switch {
		case uniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		case uniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}
	return nil
}

func (m *AccountModel) getByUsername(ctx context.Context, username string) (*Account, error) {
	query := `
		SELECT id, username, email, first_name, last_name, bio, role, is_staff, is_superuser, version, created_at
		FROM users
		WHERE username = $1`

	return m.getOne(ctx, query, username)
}

func (m *AccountModel) getByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, username, email, first_name, last_name, bio, role, is_staff, is_superuser, version, created_at
		FROM users
		WHERE email = $1`

	return m.getOne(ctx, query, email)
}

func (m *AccountModel) getOne(ctx context.Context, query string, arg any) (*Account, error) {
	var a Account
	var role string

	err := m.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.Bio, &role, &a.Staff, &a.Superuser, &a.Version, &a.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	a.Role = authz.Role(role)
	return &a, nil
}

// list returns a page of accounts, optionally filtered by a username
// substring, ordered by id like the admin surface expects.
func (m *AccountModel) list(ctx context.Context, search string, limit, offset int) ([]Account, error) {
	query := `
		SELECT id, username, email, first_name, last_name, bio, role, is_staff, is_superuser, version, created_at
		FROM users
		WHERE ($1 = '' OR username ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		var role string
		err := rows.Scan(&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.Bio, &role, &a.Staff, &a.Superuser, &a.Version, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		a.Role = authz.Role(role)
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// update writes the whole row back and bumps the version, which invalidates
// any verification code issued against the previous state.
func (m *AccountModel) update(ctx context.Context, a *Account) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4, bio = $5, role = $6, version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING version`

	args := []any{a.Username, a.Email, a.FirstName, a.LastName, a.Bio, string(a.Role), a.ID, a.Version}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&a.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		case uniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		case uniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	return nil
}

// delete removes the account. Reviews and comments cascade at the schema
// level.
func (m *AccountModel) delete(ctx context.Context, username string) error {
	query := `
		DELETE FROM users
		WHERE username = $1`

	res, err := m.db.ExecContext(ctx, query, username)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
