// internal/db/queries.go
package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/codr1/themevars/internal/models"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries implements models.ThemeQueries on top of a connection or
// transaction.
type Queries struct {
	db DBTX
}

var _ models.ThemeQueries = (*Queries)(nil)

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

const themeColumns = `id, name, is_system, source, created_at, updated_at`

const listThemes = `SELECT ` + themeColumns + `
FROM themes
ORDER BY is_system DESC, name`

func (q *Queries) ListThemes(ctx context.Context) ([]models.Theme, error) {
	rows, err := q.db.QueryContext(ctx, listThemes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.Theme{}
	for rows.Next() {
		var i models.Theme
		if err := rows.Scan(&i.ID, &i.Name, &i.IsSystem, &i.Source, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getTheme = `SELECT ` + themeColumns + `
FROM themes
WHERE name = ?`

func (q *Queries) GetTheme(ctx context.Context, name string) (models.Theme, error) {
	var i models.Theme
	err := q.db.QueryRowContext(ctx, getTheme, name).Scan(&i.ID, &i.Name, &i.IsSystem, &i.Source, &i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Theme{}, models.ErrThemeNotFound
	}
	return i, err
}

const upsertTheme = `INSERT INTO themes (name, is_system, source)
VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET
    is_system = excluded.is_system,
    source = excluded.source,
    updated_at = CURRENT_TIMESTAMP
RETURNING ` + themeColumns

func (q *Queries) UpsertTheme(ctx context.Context, arg models.UpsertThemeParams) (models.Theme, error) {
	var i models.Theme
	err := q.db.QueryRowContext(ctx, upsertTheme, arg.Name, arg.IsSystem, arg.Source).
		Scan(&i.ID, &i.Name, &i.IsSystem, &i.Source, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteTheme = `DELETE FROM themes
WHERE name = ?`

func (q *Queries) DeleteTheme(ctx context.Context, name string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteTheme, name)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
