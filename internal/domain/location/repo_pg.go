package location

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const locationCols = `id, name, open_minute, close_minute, slot_minutes, created_at, updated_at`

func scanLocation(row pgx.Row) (*Location, error) {
	var l Location
	err := row.Scan(&l.ID, &l.Name, &l.OpenMinute, &l.CloseMinute, &l.SlotMinutes, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &l, err
}

func (r *repoPG) Create(ctx context.Context, l *Location) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO location (id, name, open_minute, close_minute, slot_minutes)
		VALUES ($1,$2,$3,$4,$5)`,
		l.ID, l.Name, l.OpenMinute, l.CloseMinute, l.SlotMinutes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	return scanLocation(r.pool.QueryRow(ctx, `SELECT `+locationCols+` FROM location WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, l *Location) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE location SET name=$2, open_minute=$3, close_minute=$4, slot_minutes=$5, updated_at=NOW()
		WHERE id = $1`,
		l.ID, l.Name, l.OpenMinute, l.CloseMinute, l.SlotMinutes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM location WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Location, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM location`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+locationCols+` FROM location ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, l)
	}
	return items, total, rows.Err()
}
