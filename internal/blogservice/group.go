package blogservice

import (
	"context"
	"database/sql"
	"errors"
)

func (m *BlogModel) getGroups(ctx context.Context) ([]Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

func (m *BlogModel) getGroupByID(ctx context.Context, id int) (*Group, error) {
	query := `
		SELECT id, title, slug, description
		FROM groups
		WHERE id = $1`

	var g Group
	err := m.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Title, &g.Slug, &g.Description)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &g, nil
}
