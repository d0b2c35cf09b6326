package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `id, patient_id, staff_id, supervisor_id, location_id, status, category,
	title, notes, recurring, start_time, end_time, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.StaffID, &a.SupervisorID, &a.LocationID,
		&a.Status, &a.Category, &a.Title, &a.Notes, &a.Recurring,
		&a.StartTime, &a.EndTime, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, patient_id, staff_id, supervisor_id, location_id,
			status, category, title, notes, recurring, start_time, end_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		a.ID, a.PatientID, a.StaffID, a.SupervisorID, a.LocationID,
		a.Status, a.Category, a.Title, a.Notes, a.Recurring, a.StartTime, a.EndTime)
	return err
}

// CreateBatch inserts all drafts in one transaction so a bulk break
// assignment either fully lands or not at all.
func (r *repoPG) CreateBatch(ctx context.Context, appts []*Appointment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range appts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO appointment (id, patient_id, staff_id, supervisor_id, location_id,
				status, category, title, notes, recurring, start_time, end_time)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			a.ID, a.PatientID, a.StaffID, a.SupervisorID, a.LocationID,
			a.Status, a.Category, a.Title, a.Notes, a.Recurring, a.StartTime, a.EndTime)
		if err != nil {
			return fmt.Errorf("insert appointment %s: %w", a.ID, err)
		}
	}
	return tx.Commit(ctx)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointment SET patient_id=$2, staff_id=$3, supervisor_id=$4, location_id=$5,
			status=$6, category=$7, title=$8, notes=$9, recurring=$10,
			start_time=$11, end_time=$12, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientID, a.StaffID, a.SupervisorID, a.LocationID,
		a.Status, a.Category, a.Title, a.Notes, a.Recurring, a.StartTime, a.EndTime)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListInRange(ctx context.Context, from, to time.Time) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE start_time < $2 AND end_time > $1
		ORDER BY start_time`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *repoPG) ListByStaffAndDay(ctx context.Context, staffID uuid.UUID, day time.Time) ([]*Appointment, error) {
	from, to := dayBounds(day)
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE staff_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`, staffID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *repoPG) ListByPatientAndDay(ctx context.Context, patientID uuid.UUID, day time.Time) ([]*Appointment, error) {
	from, to := dayBounds(day)
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE patient_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`, patientID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *repoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + apptCols + ` FROM appointment WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointment WHERE 1=1`
	var args []interface{}
	idx := 1

	addFilter := func(clause, value string) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, value)
		idx++
	}
	if p, ok := params["staff"]; ok {
		addFilter(` AND staff_id = $%d`, p)
	}
	if p, ok := params["patient"]; ok {
		addFilter(` AND patient_id = $%d`, p)
	}
	if p, ok := params["status"]; ok {
		addFilter(` AND status = $%d`, p)
	}
	if p, ok := params["category"]; ok {
		addFilter(` AND category = $%d`, p)
	}
	if p, ok := params["date"]; ok {
		addFilter(` AND start_time::date = $%d`, p)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY start_time LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectAppointments(rows)
	return items, total, err
}

func collectAppointments(rows pgx.Rows) ([]*Appointment, error) {
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return from, from.AddDate(0, 0, 1)
}
