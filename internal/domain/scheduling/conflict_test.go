package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func mkAppt(patientID *uuid.UUID, staffID uuid.UUID, start, end time.Time) *Appointment {
	return &Appointment{
		ID:        uuid.New(),
		PatientID: patientID,
		StaffID:   staffID,
		Status:    StatusScheduled,
		Category:  CategoryDirect,
		StartTime: start,
		EndTime:   end,
	}
}

func TestPatientConflicts(t *testing.T) {
	patientID := uuid.New()
	other := uuid.New()
	existing := []*Appointment{
		mkAppt(&patientID, uuid.New(), ts(10, 0), ts(11, 0)),
		mkAppt(&other, uuid.New(), ts(10, 0), ts(11, 0)),
		mkAppt(nil, uuid.New(), ts(10, 0), ts(11, 0)),
	}

	conflicts := PatientConflicts(patientID, ts(10, 30), ts(11, 30), existing, uuid.Nil)
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict for the shared patient, got %d", len(conflicts))
	}
	if conflicts[0].ID != existing[0].ID {
		t.Error("wrong appointment reported as conflicting")
	}
}

func TestStaffConflictsSkipInactive(t *testing.T) {
	staffID := uuid.New()
	cancelled := mkAppt(nil, staffID, ts(10, 0), ts(11, 0))
	cancelled.Status = StatusCancelled
	noShow := mkAppt(nil, staffID, ts(10, 0), ts(11, 0))
	noShow.Status = StatusNoShow
	live := mkAppt(nil, staffID, ts(10, 0), ts(11, 0))

	conflicts := StaffConflicts(staffID, ts(10, 0), ts(11, 0), []*Appointment{cancelled, noShow, live}, uuid.Nil)
	if len(conflicts) != 1 || conflicts[0].ID != live.ID {
		t.Fatalf("cancelled and no-show bookings must not conflict, got %d", len(conflicts))
	}
}

func TestConflictsExcludeOwnPriorVersion(t *testing.T) {
	staffID := uuid.New()
	existing := mkAppt(nil, staffID, ts(10, 0), ts(11, 0))

	conflicts := StaffConflicts(staffID, ts(10, 0), ts(11, 30), []*Appointment{existing}, existing.ID)
	if len(conflicts) != 0 {
		t.Fatal("an update must not conflict with its own prior version")
	}
}

func TestConflictsTouchingEndpoints(t *testing.T) {
	staffID := uuid.New()
	existing := mkAppt(nil, staffID, ts(9, 0), ts(10, 0))

	conflicts := StaffConflicts(staffID, ts(10, 0), ts(11, 0), []*Appointment{existing}, uuid.Nil)
	if len(conflicts) != 0 {
		t.Fatal("back-to-back bookings must not conflict")
	}
}

func TestTightBookings(t *testing.T) {
	staffID := uuid.New()
	nearMiss := mkAppt(nil, staffID, ts(9, 0), ts(10, 0))
	farAway := mkAppt(nil, staffID, ts(14, 0), ts(15, 0))
	overlapping := mkAppt(nil, staffID, ts(10, 0), ts(11, 0))

	tight := TightBookings(staffID, ts(10, 10), ts(11, 10), []*Appointment{nearMiss, farAway, overlapping}, uuid.Nil, 15*time.Minute)
	if len(tight) != 1 || tight[0].ID != nearMiss.ID {
		t.Fatalf("expected only the 10-minute near-miss, got %d", len(tight))
	}
}
