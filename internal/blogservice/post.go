package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrUserForeignKey  = errors.New("author does not exist")
	ErrGroupForeignKey = errors.New("group does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insertPost(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (text, image, author_id, group_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at, version`

	err := m.db.QueryRowContext(ctx, query, p.Text, p.Image, p.Author.ID, p.GroupID).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Version)
	if err != nil {
		switch {
		case ForeignKeyError(err, "posts_author_id_fkey"):
			return ErrUserForeignKey
		case ForeignKeyError(err, "posts_group_id_fkey"):
			return ErrGroupForeignKey
		default:
			return err
		}
	}

	return nil
}

// getPostByID joins the users table so responses carry the author's username.
func (m *BlogModel) getPostByID(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT p.id, p.text, p.image, p.author_id, p.group_id, p.created_at, p.updated_at, p.version, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1`

	var post Post
	err := m.db.QueryRowContext(ctx, query, id).Scan(&post.ID, &post.Text, &post.Image, &post.Author.ID, &post.GroupID, &post.CreatedAt, &post.UpdatedAt, &post.Version, &post.Author.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &post, nil
}

func (m *BlogModel) updatePost(ctx context.Context, p *Post) error {
	query := `
		UPDATE posts
		SET text = $1, image = $2, group_id = $3, updated_at = now(), version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version, updated_at`

	err := m.db.QueryRowContext(ctx, query, p.Text, p.Image, p.GroupID, p.ID, p.Version).Scan(&p.Version, &p.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case ForeignKeyError(err, "posts_group_id_fkey"):
			return ErrGroupForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) deletePost(ctx context.Context, id int) error {
	query := `
		DELETE FROM posts
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
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

// getPosts returns a page of posts sorted by created_at descending.
func (m *BlogModel) getPosts(ctx context.Context, limit, offset int) ([]Post, error) {
	query := `
		SELECT p.id, p.text, p.image, p.author_id, p.group_id, p.created_at, p.updated_at, p.version, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var post Post
		err := rows.Scan(&post.ID, &post.Text, &post.Image, &post.Author.ID, &post.GroupID, &post.CreatedAt, &post.UpdatedAt, &post.Version, &post.Author.Username)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
