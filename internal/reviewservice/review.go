package reviewservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrDuplicateReview is returned when an author already has a review
	// for the title. The unique constraint is the source of truth; the
	// application-level existence check is only a fast path.
	ErrDuplicateReview = errors.New("duplicate review")
)

func (m *ReviewModel) insertReview(ctx context.Context, r *Review) error {
	query := `
		INSERT INTO reviews (text, score, author_id, title_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, r.Text, r.Score, r.AuthorID, r.TitleID).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		switch {
		case uniqueViolation(err, "reviews_author_id_title_id_key"):
			return ErrDuplicateReview
		case foreignKeyError(err, "reviews_title_id_fkey"):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *ReviewModel) reviewExists(ctx context.Context, authorID, titleID int) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM reviews WHERE author_id = $1 AND title_id = $2)`

	var exists bool
	err := m.db.QueryRowContext(ctx, query, authorID, titleID).Scan(&exists)
	return exists, err
}

// getReviewByID resolves the review through its parent title so a mismatched
// (title, review) pair reads as not found.
func (m *ReviewModel) getReviewByID(ctx context.Context, titleID, reviewID int) (*Review, error) {
	query := `
		SELECT r.id, r.text, r.score, r.author_id, r.title_id, r.created_at, u.username
		FROM reviews r
		JOIN users u ON r.author_id = u.id
		WHERE r.id = $1 AND r.title_id = $2`

	var r Review
	err := m.db.QueryRowContext(ctx, query, reviewID, titleID).Scan(&r.ID, &r.Text, &r.Score, &r.AuthorID, &r.TitleID, &r.CreatedAt, &r.Author)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &r, nil
}

func (m *ReviewModel) getReviewsByTitle(ctx context.Context, titleID, limit, offset int) ([]Review, error) {
	query := `
		SELECT r.id, r.text, r.score, r.author_id, r.title_id, r.created_at, u.username
		FROM reviews r
		JOIN users u ON r.author_id = u.id
		WHERE r.title_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, titleID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		err := rows.Scan(&r.ID, &r.Text, &r.Score, &r.AuthorID, &r.TitleID, &r.CreatedAt, &r.Author)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}

	return reviews, rows.Err()
}

func (m *ReviewModel) updateReview(ctx context.Context, r *Review) error {
	query := `
		UPDATE reviews
		SET text = $1, score = $2
		WHERE id = $3 AND title_id = $4`

	res, err := m.db.ExecContext(ctx, query, r.Text, r.Score, r.ID, r.TitleID)
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

func (m *ReviewModel) deleteReview(ctx context.Context, titleID, reviewID int) error {
	query := `
		DELETE FROM reviews
		WHERE id = $1 AND title_id = $2`

	res, err := m.db.ExecContext(ctx, query, reviewID, titleID)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
