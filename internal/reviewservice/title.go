package reviewservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TitleFilter narrows title listings. Zero values mean no filtering.
type TitleFilter struct {
	Category string
	Genre    string
	Name     string
	Year     *int
}

func (m *ReviewModel) insertTitle(ctx context.Context, t *Title, genreIDs []int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var categoryID *int
	if t.Category != nil {
		categoryID = &t.Category.ID
	}

	err = tx.QueryRowContext(ctx, query, t.Name, t.Year, t.Description, categoryID).Scan(&t.ID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := m.replaceTitleGenres(tx, ctx, t.ID, genreIDs); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (m *ReviewModel) replaceTitleGenres(tx *sql.Tx, ctx context.Context, titleID int, genreIDs []int) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM title_genres WHERE title_id = $1`, titleID)
	if err != nil {
		return err
	}

	for _, id := range genreIDs {
		_, err := tx.ExecContext(ctx, `INSERT INTO title_genres (title_id, genre_id) VALUES ($1, $2)`, titleID, id)
		if err != nil {
			return err
		}
	}

	return nil
}

// getTitleByID loads a title with its category, genres and mean review score.
// AVG returns NULL for a title with no reviews, which scans into a nil
// rating.
func (m *ReviewModel) getTitleByID(ctx context.Context, id int) (*Title, error) {
	query := `
		SELECT t.id, t.name, t.year, t.description,
		       c.id, c.name, c.slug,
		       (SELECT AVG(r.score) FROM reviews r WHERE r.title_id = t.id)
		FROM titles t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1`

	var t Title
	var catID sql.NullInt64
	var catName, catSlug sql.NullString

	err := m.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Year, &t.Description, &catID, &catName, &catSlug, &t.Rating)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	if catID.Valid {
		t.Category = &Term{ID: int(catID.Int64), Name: catName.String, Slug: catSlug.String}
	}

	genres, err := m.getTitleGenres(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Genres = genres

	return &t, nil
}

func (m *ReviewModel) getTitleGenres(ctx context.Context, titleID int) ([]Term, error) {
	query := `
		SELECT g.id, g.name, g.slug
		FROM genres g
		JOIN title_genres tg ON g.id = tg.genre_id
		WHERE tg.title_id = $1
		ORDER BY g.id`

	rows, err := m.db.QueryContext(ctx, query, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var genres []Term
	for rows.Next() {
		var g Term
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}

	return genres, rows.Err()
}

func (m *ReviewModel) listTitles(ctx context.Context, f TitleFilter, limit, offset int) ([]Title, error) {
	query := `
		SELECT t.id, t.name, t.year, t.description,
		       c.id, c.name, c.slug,
		       (SELECT AVG(r.score) FROM reviews r WHERE r.title_id = t.id)
		FROM titles t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE ($1 = '' OR c.slug = $1)
		  AND ($2 = '' OR EXISTS (
			SELECT 1 FROM title_genres tg JOIN genres g ON tg.genre_id = g.id
			WHERE tg.title_id = t.id AND g.slug = $2))
		  AND ($3 = '' OR t.name ILIKE '%' || $3 || '%')
		  AND ($4::int IS NULL OR t.year = $4)
		ORDER BY t.id
		LIMIT $5 OFFSET $6`

	rows, err := m.db.QueryContext(ctx, query, f.Category, f.Genre, f.Name, f.Year, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []Title
	for rows.Next() {
		var t Title
		var catID sql.NullInt64
		var catName, catSlug sql.NullString

		err := rows.Scan(&t.ID, &t.Name, &t.Year, &t.Description, &catID, &catName, &catSlug, &t.Rating)
		if err != nil {
			return nil, err
		}

		if catID.Valid {
			t.Category = &Term{ID: int(catID.Int64), Name: catName.String, Slug: catSlug.String}
		}

		titles = append(titles, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range titles {
		genres, err := m.getTitleGenres(ctx, titles[i].ID)
		if err != nil {
			return nil, err
		}
		titles[i].Genres = genres
	}

	return titles, nil
}

func (m *ReviewModel) updateTitle(ctx context.Context, t *Title, genreIDs []int, setGenres bool) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	var categoryID *int
	if t.Category != nil {
		categoryID = &t.Category.ID
	}

	query := `
		UPDATE titles
		SET name = $1, year = $2, description = $3, category_id = $4
		WHERE id = $5`

	res, err := tx.ExecContext(ctx, query, t.Name, t.Year, t.Description, categoryID, t.ID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if rows == 0 {
		_ = tx.Rollback()
		return ErrRecordNotFound
	}

	if setGenres {
		if err := m.replaceTitleGenres(tx, ctx, t.ID, genreIDs); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (m *ReviewModel) deleteTitle(ctx context.Context, id int) error {
	query := `
		DELETE FROM titles
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
