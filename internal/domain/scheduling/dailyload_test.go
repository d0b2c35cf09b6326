package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCheckDailyLoadAtCapBoundary(t *testing.T) {
	patientID := uuid.New()
	day := ts(0, 0)
	// 6 hours already booked, 2 proposed: exactly at the 8-hour cap.
	existing := []*Appointment{
		mkAppt(&patientID, uuid.New(), ts(8, 0), ts(14, 0)),
	}

	load := CheckDailyLoad(patientID, day, 2*time.Hour, existing, 8*time.Hour, 0.8, uuid.Nil)
	if load.Exceeds {
		t.Error("total exactly equal to the cap must not exceed")
	}
	if !load.Approaching {
		t.Error("8 of 8 hours is past the 80% warning threshold")
	}
	if load.TotalHours != 8 {
		t.Errorf("expected 8 total hours, got %v", load.TotalHours)
	}
}

func TestCheckDailyLoadOneMinuteOver(t *testing.T) {
	patientID := uuid.New()
	existing := []*Appointment{
		mkAppt(&patientID, uuid.New(), ts(8, 0), ts(14, 0)),
	}

	load := CheckDailyLoad(patientID, ts(0, 0), 2*time.Hour+time.Minute, existing, 8*time.Hour, 0.8, uuid.Nil)
	if !load.Exceeds {
		t.Error("one minute over the cap must exceed")
	}
	if load.Approaching {
		t.Error("approaching is suppressed once the cap is exceeded")
	}
}

func TestCheckDailyLoadAtWarnFraction(t *testing.T) {
	patientID := uuid.New()
	// 5.5 booked + 0.9 proposed = 6.4 = exactly 80% of 8.
	existing := []*Appointment{
		mkAppt(&patientID, uuid.New(), ts(8, 0), ts(13, 30)),
	}

	load := CheckDailyLoad(patientID, ts(0, 0), 54*time.Minute, existing, 8*time.Hour, 0.8, uuid.Nil)
	if load.Exceeds {
		t.Error("6.4 of 8 hours must not exceed")
	}
	if !load.Approaching {
		t.Error("exactly 80% of cap should warn")
	}
}

func TestCheckDailyLoadBelowWarnFraction(t *testing.T) {
	patientID := uuid.New()
	existing := []*Appointment{
		mkAppt(&patientID, uuid.New(), ts(8, 0), ts(10, 0)),
	}

	load := CheckDailyLoad(patientID, ts(0, 0), time.Hour, existing, 8*time.Hour, 0.8, uuid.Nil)
	if load.Exceeds || load.Approaching {
		t.Errorf("3 of 8 hours should be quiet, got %+v", load)
	}
}

func TestCheckDailyLoadScoping(t *testing.T) {
	patientID := uuid.New()
	otherPatient := uuid.New()
	cancelled := mkAppt(&patientID, uuid.New(), ts(8, 0), ts(12, 0))
	cancelled.Status = StatusCancelled
	otherDay := mkAppt(&patientID, uuid.New(),
		time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC))
	existing := []*Appointment{
		cancelled,
		otherDay,
		mkAppt(&otherPatient, uuid.New(), ts(8, 0), ts(12, 0)),
		mkAppt(&patientID, uuid.New(), ts(9, 0), ts(10, 0)),
	}

	load := CheckDailyLoad(patientID, ts(0, 0), time.Hour, existing, 8*time.Hour, 0.8, uuid.Nil)
	if load.BookedHours != 1 {
		t.Errorf("only the same-patient same-day active hour should count, got %v", load.BookedHours)
	}
}

func TestCheckDailyLoadExcludesOwnVersion(t *testing.T) {
	patientID := uuid.New()
	own := mkAppt(&patientID, uuid.New(), ts(9, 0), ts(12, 0))

	load := CheckDailyLoad(patientID, ts(0, 0), 4*time.Hour, []*Appointment{own}, 8*time.Hour, 0.8, own.ID)
	if load.BookedHours != 0 {
		t.Errorf("the appointment being updated must not count twice, got %v", load.BookedHours)
	}
}
