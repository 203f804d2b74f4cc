package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

func (m *BlogModel) insertComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO post_comments (text, author_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, c.Text, c.Author.ID, c.PostID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch {
		case ForeignKeyError(err, "post_comments_post_id_fkey"):
			return ErrRecordNotFound
		case ForeignKeyError(err, "post_comments_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getCommentByID resolves a comment through its parent post so a mismatched
// (post, comment) pair reads as not found.
func (m *BlogModel) getCommentByID(ctx context.Context, postID, commentID int) (*Comment, error) {
	query := `
		SELECT c.id, c.text, c.author_id, c.post_id, c.created_at, u.username
		FROM post_comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.id = $1 AND c.post_id = $2`

	var c Comment
	err := m.db.QueryRowContext(ctx, query, commentID, postID).Scan(&c.ID, &c.Text, &c.Author.ID, &c.PostID, &c.CreatedAt, &c.Author.Username)
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

func (m *BlogModel) getCommentsByPost(ctx context.Context, postID, limit, offset int) ([]Comment, error) {
	query := `
		SELECT c.id, c.text, c.author_id, c.post_id, c.created_at, u.username
		FROM post_comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := m.db.QueryContext(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.Text, &c.Author.ID, &c.PostID, &c.CreatedAt, &c.Author.Username)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *BlogModel) updateComment(ctx context.Context, c *Comment) error {
	query := `
		UPDATE post_comments
		SET text = $1
		WHERE id = $2 AND post_id = $3`

	res, err := m.db.ExecContext(ctx, query, c.Text, c.ID, c.PostID)
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

func (m *BlogModel) deleteComment(ctx context.Context, postID, commentID int) error {
	query := `
		DELETE FROM post_comments
		WHERE id = $1 AND post_id = $2`

	res, err := m.db.ExecContext(ctx, query, commentID, postID)
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
