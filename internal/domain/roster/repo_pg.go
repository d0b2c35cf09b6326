package roster

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type staffRepoPG struct{ pool *pgxpool.Pool }

func NewStaffRepoPG(pool *pgxpool.Pool) StaffRepository { return &staffRepoPG{pool: pool} }

const staffCols = `id, name, role, team_id, active, created_at, updated_at`

func scanStaff(row pgx.Row) (*StaffMember, error) {
	var s StaffMember
	err := row.Scan(&s.ID, &s.Name, &s.Role, &s.TeamID, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	return &s, err
}

func (r *staffRepoPG) Create(ctx context.Context, s *StaffMember) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO staff_member (id, name, role, team_id, active)
		VALUES ($1,$2,$3,$4,$5)`,
		s.ID, s.Name, s.Role, s.TeamID, s.Active)
	return err
}

func (r *staffRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*StaffMember, error) {
	return scanStaff(r.pool.QueryRow(ctx, `SELECT `+staffCols+` FROM staff_member WHERE id = $1`, id))
}

func (r *staffRepoPG) Update(ctx context.Context, s *StaffMember) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE staff_member SET name=$2, role=$3, team_id=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Name, s.Role, s.TeamID, s.Active)
	return err
}

func (r *staffRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM staff_member WHERE id = $1`, id)
	return err
}

func (r *staffRepoPG) List(ctx context.Context, limit, offset int) ([]*StaffMember, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff_member`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+staffCols+` FROM staff_member ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *staffRepoPG) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*StaffMember, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+staffCols+` FROM staff_member WHERE team_id = $1 AND active ORDER BY name`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

type teamRepoPG struct{ pool *pgxpool.Pool }

func NewTeamRepoPG(pool *pgxpool.Pool) TeamRepository { return &teamRepoPG{pool: pool} }

const teamCols = `id, name, lead_id, created_at, updated_at`

func scanTeam(row pgx.Row) (*Team, error) {
	var t Team
	err := row.Scan(&t.ID, &t.Name, &t.LeadID, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	return &t, err
}

func (r *teamRepoPG) Create(ctx context.Context, t *Team) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO team (id, name, lead_id) VALUES ($1,$2,$3)`,
		t.ID, t.Name, t.LeadID)
	return err
}

func (r *teamRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	return scanTeam(r.pool.QueryRow(ctx, `SELECT `+teamCols+` FROM team WHERE id = $1`, id))
}

func (r *teamRepoPG) Update(ctx context.Context, t *Team) error {
	_, err := r.pool.Exec(ctx, `UPDATE team SET name=$2, lead_id=$3, updated_at=NOW() WHERE id = $1`,
		t.ID, t.Name, t.LeadID)
	return err
}

func (r *teamRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM team WHERE id = $1`, id)
	return err
}

func (r *teamRepoPG) List(ctx context.Context, limit, offset int) ([]*Team, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM team`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+teamCols+` FROM team ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, rows.Err()
}
