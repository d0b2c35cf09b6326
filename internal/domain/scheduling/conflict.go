package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// findConflicts returns the active appointments matched by sameSubject whose
// time range overlaps [start,end). excludeID skips the candidate's own prior
// version on updates; pass uuid.Nil for creates.
func findConflicts(start, end time.Time, existing []*Appointment, excludeID uuid.UUID, sameSubject func(*Appointment) bool) []*Appointment {
	var conflicts []*Appointment
	for _, a := range existing {
		if a.ID == excludeID || !a.IsActive() || !sameSubject(a) {
			continue
		}
		if Overlaps(start, end, a.StartTime, a.EndTime) {
			conflicts = append(conflicts, a)
		}
	}
	return conflicts
}

// PatientConflicts returns active appointments for the same patient that
// overlap the candidate interval.
func PatientConflicts(patientID uuid.UUID, start, end time.Time, existing []*Appointment, excludeID uuid.UUID) []*Appointment {
	return findConflicts(start, end, existing, excludeID, func(a *Appointment) bool {
		return a.PatientID != nil && *a.PatientID == patientID
	})
}

// StaffConflicts returns active appointments for the same staff member that
// overlap the candidate interval.
func StaffConflicts(staffID uuid.UUID, start, end time.Time, existing []*Appointment, excludeID uuid.UUID) []*Appointment {
	return findConflicts(start, end, existing, excludeID, func(a *Appointment) bool {
		return a.StaffID == staffID
	})
}

// TightBookings returns active appointments for the given staff member that
// do not overlap the candidate interval but sit within buffer of it. These
// surface as tight-schedule warnings, never hard conflicts.
func TightBookings(staffID uuid.UUID, start, end time.Time, existing []*Appointment, excludeID uuid.UUID, buffer time.Duration) []*Appointment {
	var tight []*Appointment
	for _, a := range existing {
		if a.ID == excludeID || !a.IsActive() || a.StaffID != staffID {
			continue
		}
		if WithinBuffer(start, end, a.StartTime, a.EndTime, buffer) {
			tight = append(tight, a)
		}
	}
	return tight
}
