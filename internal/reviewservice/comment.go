package reviewservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func (m *ReviewModel) insertComment(ctx context.Context, c *ReviewComment) error {
	query := `
		INSERT INTO review_comments (text, author_id, review_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, c.Text, c.AuthorID, c.ReviewID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch {
		case foreignKeyError(err, "review_comments_review_id_fkey"):
			return ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *ReviewModel) getCommentByID(ctx context.Context, reviewID, commentID int) (*ReviewComment, error) {
	query := `
		SELECT c.id, c.text, c.author_id, c.review_id, c.created_at, u.username
		FROM review_comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.id = $1 AND c.review_id = $2`

	var c ReviewComment
	err := m.db.QueryRowContext(ctx, query, commentID, reviewID).Scan(&c.ID, &c.Text, &c.AuthorID, &c.ReviewID, &c.CreatedAt, &c.Author)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

func (m *ReviewModel) getCommentsByReview(ctx context.Context, reviewID, limit, offset int) ([]ReviewComment, error) {
	query := `
		SELECT c.id, c.text, c.author_id, c.review_id, c.created_at, u.username
		FROM review_comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.review_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, reviewID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []ReviewComment
	for rows.Next() {
		var c ReviewComment
		err := rows.Scan(&c.ID, &c.Text, &c.AuthorID, &c.ReviewID, &c.CreatedAt, &c.Author)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (m *ReviewModel) updateComment(ctx context.Context, c *ReviewComment) error {
	query := `
		UPDATE review_comments
		SET text = $1
		WHERE id = $2 AND review_id = $3`

	res, err := m.db.ExecContext(ctx, query, c.Text, c.ID, c.ReviewID)
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

func (m *ReviewModel) deleteComment(ctx context.Context, reviewID, commentID int) error {
	query := `
		DELETE FROM review_comments
		WHERE id = $1 AND review_id = $2`

	res, err := m.db.ExecContext(ctx, query, commentID, reviewID)
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
