package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/scheduler/internal/platform/lock"
)

// GridSource resolves the slot grid for a location.
type GridSource interface {
	GridForLocation(ctx context.Context, locationID uuid.UUID) (*Grid, error)
}

// Service orchestrates appointment booking: every create and update runs the
// validator against a fresh snapshot inside a per-subject lock, so the
// conflict check and the write happen in the same critical section.
type Service struct {
	repo      Repository
	locker    lock.Locker
	validator *Validator
	grids     GridSource
}

func NewService(repo Repository, locker lock.Locker, policy Policy, grids GridSource) *Service {
	return &Service{
		repo:      repo,
		locker:    locker,
		validator: NewValidator(policy),
		grids:     grids,
	}
}

// ValidateAppointment is the dry-run path: it validates the candidate
// against the current snapshot without persisting anything.
func (s *Service) ValidateAppointment(ctx context.Context, a *Appointment) (ValidationResult, error) {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	existing, err := s.snapshot(ctx, a)
	if err != nil {
		return ValidationResult{}, err
	}
	return s.validator.Validate(a, existing), nil
}

// CreateAppointment validates and persists a new appointment. An invalid
// candidate returns the result with nil error; the caller inspects Valid.
func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) (ValidationResult, error) {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.Category == "" {
		a.Category = CategoryDirect
	}

	var result ValidationResult
	err := s.withSubjectLocks(ctx, a, func(ctx context.Context) error {
		existing, err := s.snapshot(ctx, a)
		if err != nil {
			return err
		}
		result = s.validator.Validate(a, existing)
		if !result.Valid {
			return nil
		}
		return s.repo.Create(ctx, a)
	})
	return result, err
}

// UpdateAppointment re-validates the changed appointment; its own prior
// version is excluded from conflict checks by ID.
func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) (ValidationResult, error) {
	if _, err := s.repo.GetByID(ctx, a.ID); err != nil {
		return ValidationResult{}, err
	}

	var result ValidationResult
	err := s.withSubjectLocks(ctx, a, func(ctx context.Context) error {
		existing, err := s.snapshot(ctx, a)
		if err != nil {
			return err
		}
		result = s.validator.Validate(a, existing)
		if !result.Valid {
			return nil
		}
		return s.repo.Update(ctx, a)
	})
	return result, err
}

// CancelAppointment marks the appointment cancelled, freeing its time range
// for conflict purposes without losing the record.
func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = StatusCancelled
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchAppointments(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

// DayGroups returns a patient's appointments for the day merged into
// consecutive-session groups. When a location is given its grid supplies
// slot spans; otherwise spans are omitted.
func (s *Service) DayGroups(ctx context.Context, patientID uuid.UUID, day time.Time, locationID *uuid.UUID) ([]SessionGroup, error) {
	appts, err := s.repo.ListByPatientAndDay(ctx, patientID, day)
	if err != nil {
		return nil, err
	}
	var grid *Grid
	if locationID != nil && s.grids != nil {
		grid, err = s.grids.GridForLocation(ctx, *locationID)
		if err != nil {
			return nil, fmt.Errorf("resolve location grid: %w", err)
		}
	}
	return GroupConsecutive(appts, grid), nil
}

// snapshot loads every appointment that could interact with the candidate:
// anything overlapping the calendar days its interval touches.
func (s *Service) snapshot(ctx context.Context, a *Appointment) ([]*Appointment, error) {
	from, _ := dayBounds(a.StartTime)
	_, to := dayBounds(a.EndTime)
	existing, err := s.repo.ListInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load appointment snapshot: %w", err)
	}
	return existing, nil
}

// withSubjectLocks serializes on the staff member and, when present, the
// patient, so concurrent bookings for either subject cannot interleave
// between validation and write.
func (s *Service) withSubjectLocks(ctx context.Context, a *Appointment, fn func(ctx context.Context) error) error {
	inner := fn
	if a.PatientID != nil {
		patientKey := "patient:" + a.PatientID.String()
		wrapped := inner
		inner = func(ctx context.Context) error {
			return s.locker.WithLock(ctx, patientKey, wrapped)
		}
	}
	return s.locker.WithLock(ctx, "staff:"+a.StaffID.String(), inner)
}
