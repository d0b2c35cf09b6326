package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/scheduler/internal/platform/lock"
)

type mockRepo struct {
	appts map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.appts[a.ID] = a
	return nil
}

func (m *mockRepo) CreateBatch(ctx context.Context, appts []*Appointment) error {
	for _, a := range appts {
		if err := m.Create(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.appts[a.ID]; !ok {
		return ErrNotFound
	}
	a.UpdatedAt = time.Now()
	m.appts[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.appts[id]; !ok {
		return ErrNotFound
	}
	delete(m.appts, id)
	return nil
}

func (m *mockRepo) ListInRange(_ context.Context, from, to time.Time) ([]*Appointment, error) {
	var out []*Appointment
	for _, a := range m.appts {
		if Overlaps(a.StartTime, a.EndTime, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByStaffAndDay(_ context.Context, staffID uuid.UUID, day time.Time) ([]*Appointment, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)
	var out []*Appointment
	for _, a := range m.appts {
		if a.StaffID == staffID && Overlaps(a.StartTime, a.EndTime, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByPatientAndDay(_ context.Context, patientID uuid.UUID, day time.Time) ([]*Appointment, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)
	var out []*Appointment
	for _, a := range m.appts {
		if a.PatientID != nil && *a.PatientID == patientID && Overlaps(a.StartTime, a.EndTime, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range m.appts {
		if v, ok := params["staff"]; ok && v != a.StaffID.String() {
			continue
		}
		if v, ok := params["status"]; ok && v != string(a.Status) {
			continue
		}
		out = append(out, a)
	}
	total := len(out)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

type stubGrids struct {
	grid *Grid
}

func (s *stubGrids) GridForLocation(context.Context, uuid.UUID) (*Grid, error) {
	return s.grid, nil
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, lock.NewLocalLocker(), DefaultPolicy(), &stubGrids{})
}

func TestCreateAppointmentPersists(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	patientID := uuid.New()

	a := &Appointment{
		PatientID: &patientID,
		StaffID:   uuid.New(),
		StartTime: ts(10, 0),
		EndTime:   ts(11, 0),
	}
	result, err := svc.CreateAppointment(context.Background(), a)
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result)
	}
	if a.Status != StatusScheduled || a.Category != CategoryDirect {
		t.Errorf("expected scheduled/direct defaults, got %s/%s", a.Status, a.Category)
	}
	if len(repo.appts) != 1 {
		t.Errorf("expected 1 persisted appointment, got %d", len(repo.appts))
	}
}

func TestCreateAppointmentConflictNotPersisted(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	patientID := uuid.New()

	first := &Appointment{PatientID: &patientID, StaffID: uuid.New(), StartTime: ts(10, 0), EndTime: ts(11, 0)}
	if _, err := svc.CreateAppointment(context.Background(), first); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	second := &Appointment{PatientID: &patientID, StaffID: uuid.New(), StartTime: ts(10, 30), EndTime: ts(11, 30)}
	result, err := svc.CreateAppointment(context.Background(), second)
	if err != nil {
		t.Fatalf("conflicting create must not error, got %v", err)
	}
	if result.Valid {
		t.Fatal("overlapping patient booking should be invalid")
	}
	if len(repo.appts) != 1 {
		t.Errorf("invalid candidate must not be persisted, have %d appointments", len(repo.appts))
	}
}

func TestValidateAppointmentIsDryRun(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	a := &Appointment{StaffID: uuid.New(), StartTime: ts(10, 0), EndTime: ts(11, 0)}
	result, err := svc.ValidateAppointment(context.Background(), a)
	if err != nil || !result.Valid {
		t.Fatalf("expected clean dry run, got %+v / %v", result, err)
	}
	if len(repo.appts) != 0 {
		t.Error("dry run must not persist")
	}
}

func TestUpdateAppointmentExcludesOwnVersion(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	patientID := uuid.New()

	a := &Appointment{PatientID: &patientID, StaffID: uuid.New(), StartTime: ts(10, 0), EndTime: ts(11, 0)}
	if _, err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	// Shift by 30 minutes; the new interval overlaps the old one but an
	// appointment cannot conflict with itself.
	a.StartTime = ts(10, 30)
	a.EndTime = ts(11, 30)
	result, err := svc.UpdateAppointment(context.Background(), a)
	if err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	if !result.Valid {
		t.Fatalf("update overlapping only itself should be valid, got %+v", result)
	}
}

func TestUpdateAppointmentUnknownID(t *testing.T) {
	svc := newTestService(newMockRepo())
	a := &Appointment{ID: uuid.New(), StaffID: uuid.New(), StartTime: ts(10, 0), EndTime: ts(11, 0)}

	if _, err := svc.UpdateAppointment(context.Background(), a); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelAppointmentFreesRange(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	patientID := uuid.New()

	a := &Appointment{PatientID: &patientID, StaffID: uuid.New(), StartTime: ts(10, 0), EndTime: ts(11, 0)}
	if _, err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("seed create: %v", err)
	}
	cancelled, err := svc.CancelAppointment(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("expected cancelled status, got %s", cancelled.Status)
	}

	replacement := &Appointment{PatientID: &patientID, StaffID: uuid.New(), StartTime: ts(10, 0), EndTime: ts(11, 0)}
	result, err := svc.CreateAppointment(context.Background(), replacement)
	if err != nil || !result.Valid {
		t.Fatalf("cancelled slot should be bookable again, got %+v / %v", result, err)
	}
}

func TestDayGroupsUsesLocationGrid(t *testing.T) {
	repo := newMockRepo()
	grid, _ := NewGrid(8*60, 17*60, 30)
	svc := NewService(repo, lock.NewLocalLocker(), DefaultPolicy(), &stubGrids{grid: grid})
	patientID := uuid.New()
	staffID := uuid.New()

	for _, span := range [][2]time.Time{
		{ts(9, 0), ts(9, 30)},
		{ts(9, 30), ts(10, 0)},
	} {
		a := &Appointment{PatientID: &patientID, StaffID: staffID, StartTime: span[0], EndTime: span[1]}
		if _, err := svc.CreateAppointment(context.Background(), a); err != nil {
			t.Fatalf("seed create: %v", err)
		}
	}

	locationID := uuid.New()
	groups, err := svc.DayGroups(context.Background(), patientID, ts(0, 0), &locationID)
	if err != nil {
		t.Fatalf("DayGroups: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected one merged group, got %d", len(groups))
	}
	if groups[0].SlotSpan != 2 {
		t.Errorf("expected a 2-slot span, got %d", groups[0].SlotSpan)
	}
}
