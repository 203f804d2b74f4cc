package reviewservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateSlug  = errors.New("duplicate slug")
)

const (
	tableCategories = "categories"
	tableGenres     = "genres"
)

func newReviewModel(db *sql.DB) *ReviewModel {
	return &ReviewModel{db: db}
}

func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" && pqErr.Constraint == name
	}
	return false
}

func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}
	return false
}

func (m *ReviewModel) slugExists(ctx context.Context, table, slug string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1)`, table)

	var exists bool
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&exists)
	return exists, err
}

func (m *ReviewModel) insertTerm(ctx context.Context, table string, t *Term) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, slug)
		VALUES ($1, $2)
		RETURNING id`, table)

	err := m.db.QueryRowContext(ctx, query, t.Name, t.Slug).Scan(&t.ID)
	if err != nil {
		switch {
		case uniqueViolation(err, table+"_slug_key"):
			return ErrDuplicateSlug
		default:
			return err
		}
	}
	return nil
}

func (m *ReviewModel) getTermBySlug(ctx context.Context, table, slug string) (*Term, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug
		FROM %s
		WHERE slug = $1`, table)

	var t Term
	err := m.db.QueryRowContext(ctx, query, slug).Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &t, nil
}

// listTerms returns a page of taxonomy entries, optionally filtered by a name
// substring.
func (m *ReviewModel) listTerms(ctx context.Context, table, search string, limit, offset int) ([]Term, error) {
	query := fmt.Sprintf(`
		SELECT id, name, slug
		FROM %s
		WHERE ($1 = '' OR name ILIKE '%%' || $1 || '%%')
		ORDER BY id
		LIMIT $2 OFFSET $3`, table)

	rows, err := m.db.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []Term
	for rows.Next() {
		var t Term
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return terms, nil
}

// deleteTerm removes a taxonomy entry by slug. Titles referencing a deleted
// category keep their row with category set to null at the schema level.
func (m *ReviewModel) deleteTerm(ctx context.Context, table, slug string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE slug = $1`, table)

	res, err := m.db.ExecContext(ctx, query, slug)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}
