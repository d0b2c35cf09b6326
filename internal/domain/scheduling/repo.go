package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an appointment does not exist.
var ErrNotFound = errors.New("appointment not found")

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	CreateBatch(ctx context.Context, appts []*Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListInRange returns all appointments overlapping [from,to), any status.
	ListInRange(ctx context.Context, from, to time.Time) ([]*Appointment, error)
	ListByStaffAndDay(ctx context.Context, staffID uuid.UUID, day time.Time) ([]*Appointment, error)
	ListByPatientAndDay(ctx context.Context, patientID uuid.UUID, day time.Time) ([]*Appointment, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error)
}
