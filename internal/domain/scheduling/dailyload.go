package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// DailyLoad is the outcome of checking a patient's booked hours for one
// calendar day against the daily cap.
type DailyLoad struct {
	BookedHours   float64 `json:"booked_hours"`
	ProposedHours float64 `json:"proposed_hours"`
	TotalHours    float64 `json:"total_hours"`
	CapHours      float64 `json:"cap_hours"`
	Exceeds       bool    `json:"exceeds"`
	Approaching   bool    `json:"approaching"`
}

// CheckDailyLoad sums the durations of the patient's active appointments
// whose start falls on the same calendar day as `day`, adds the proposed
// duration, and compares the total to cap. Exceeds is strict: a total equal
// to the cap is allowed. Approaching fires at warnFraction of the cap and is
// suppressed once the cap is exceeded.
func CheckDailyLoad(patientID uuid.UUID, day time.Time, proposed time.Duration, existing []*Appointment, cap time.Duration, warnFraction float64, excludeID uuid.UUID) DailyLoad {
	var booked time.Duration
	for _, a := range existing {
		if a.ID == excludeID || !a.IsActive() {
			continue
		}
		if a.PatientID == nil || *a.PatientID != patientID {
			continue
		}
		if !sameCalendarDay(day, a.StartTime) {
			continue
		}
		booked += a.Duration()
	}

	total := booked + proposed
	warnAt := time.Duration(float64(cap) * warnFraction)

	load := DailyLoad{
		BookedHours:   booked.Hours(),
		ProposedHours: proposed.Hours(),
		TotalHours:    total.Hours(),
		CapHours:      cap.Hours(),
		Exceeds:       total > cap,
	}
	load.Approaching = !load.Exceeds && total >= warnAt
	return load
}
