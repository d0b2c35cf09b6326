package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

var validStatuses = map[Status]bool{
	StatusScheduled: true, StatusCompleted: true,
	StatusCancelled: true, StatusNoShow: true,
}

// Category is the functional type of an appointment.
type Category string

const (
	CategoryDirect           Category = "direct"
	CategoryIndirect         Category = "indirect"
	CategorySupervision      Category = "supervision"
	CategoryBreak            Category = "break"
	CategoryGroupActivity    Category = "group-activity"
	CategoryFacilityCleaning Category = "facility-cleaning"
)

// Appointment maps to the appointment table. PatientID is nil for
// non-patient-facing entries such as breaks and facility tasks.
type Appointment struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	StaffID      uuid.UUID  `db:"staff_id" json:"staff_id"`
	SupervisorID *uuid.UUID `db:"supervisor_id" json:"supervisor_id,omitempty"`
	LocationID   *uuid.UUID `db:"location_id" json:"location_id,omitempty"`
	Status       Status     `db:"status" json:"status"`
	Category     Category   `db:"category" json:"category"`
	Title        *string    `db:"title" json:"title,omitempty"`
	Notes        *string    `db:"notes" json:"notes,omitempty"`
	Recurring    bool       `db:"recurring" json:"recurring"`
	StartTime    time.Time  `db:"start_time" json:"start_time"`
	EndTime      time.Time  `db:"end_time" json:"end_time"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the appointment still occupies its time range.
// Cancelled and no-show entries never count toward conflicts or load.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// Duration returns the booked length of the appointment.
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// ErrorKind tags a hard validation error.
type ErrorKind string

const (
	ErrKindMissingStaff     ErrorKind = "missing-staff"
	ErrKindMissingTime      ErrorKind = "missing-time"
	ErrKindInvalidStatus    ErrorKind = "invalid-status"
	ErrKindEndNotAfterStart ErrorKind = "end-not-after-start"
	ErrKindDurationTooShort ErrorKind = "duration-too-short"
	ErrKindPatientConflict  ErrorKind = "patient-double-booking"
	ErrKindStaffConflict    ErrorKind = "staff-double-booking"
)

// WarningKind tags a soft validation warning.
type WarningKind string

const (
	WarnKindApproachingDailyCap WarningKind = "approaching-daily-cap"
	WarnKindExceedsDailyCap     WarningKind = "exceeds-daily-cap"
	WarnKindTightSchedule       WarningKind = "tight-schedule"
)

// ValidationError is a hard, blocking validation outcome.
type ValidationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationWarning is a soft, non-blocking validation outcome.
type ValidationWarning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// ValidationResult is the aggregated outcome of validating one candidate
// appointment against an existing appointment set. It is produced per call
// and never persisted.
type ValidationResult struct {
	Valid       bool                `json:"valid"`
	Errors      []ValidationError   `json:"errors,omitempty"`
	Warnings    []ValidationWarning `json:"warnings,omitempty"`
	ConflictIDs []uuid.UUID         `json:"conflict_ids,omitempty"`
}

func (r *ValidationResult) addError(kind ErrorKind, msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Kind: kind, Message: msg})
}

func (r *ValidationResult) addWarning(kind WarningKind, msg string) {
	r.Warnings = append(r.Warnings, ValidationWarning{Kind: kind, Message: msg})
}

// SessionGroup is one or more adjacent same-subject appointments merged into
// a single renderable unit. StartTime/EndTime span the whole group.
type SessionGroup struct {
	StartTime    time.Time      `json:"start_time"`
	EndTime      time.Time      `json:"end_time"`
	Category     Category       `json:"category"`
	Appointments []*Appointment `json:"appointments"`
	SlotSpan     int            `json:"slot_span"`
}
