package coverage

import (
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/scheduler/internal/domain/scheduling"
)

// Severity grades a coverage warning.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// WarningKind tags a coverage warning.
type WarningKind string

const (
	WarnKindBreakSchedulable   WarningKind = "break-schedulable"
	WarnKindBreakBlocked       WarningKind = "break-blocked"
	WarnKindBreakUnneeded      WarningKind = "break-unneeded"
	WarnKindSimultaneousBreaks WarningKind = "simultaneous-breaks"
)

// Warning is a soft coverage finding. Coverage never blocks anything; even
// break-blocked is a finding for a human, not a rejected operation.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// BreakPolicy holds the break window and scoring weights. These are policy
// knobs, not mechanism; callers inject them rather than relying on literals.
type BreakPolicy struct {
	RequiredAfter       time.Duration `json:"required_after"`
	BreakMinutes        int           `json:"break_minutes"`
	WindowStartMinute   int           `json:"window_start_minute"`
	WindowEndMinute     int           `json:"window_end_minute"`
	CenterBonus         int           `json:"center_bonus"`
	CenterAdjacentBonus int           `json:"center_adjacent_bonus"`
	NaturalBreakBonus   int           `json:"natural_break_bonus"`
	OneSidedBonus       int           `json:"one_sided_bonus"`
	CrowdPenalty        int           `json:"crowd_penalty"`
}

// DefaultBreakPolicy returns the reference policy: breaks required after four
// hours of direct work, scheduled inside an 11:00 to 13:30 lunch window.
func DefaultBreakPolicy() BreakPolicy {
	return BreakPolicy{
		RequiredAfter:       4 * time.Hour,
		BreakMinutes:        30,
		WindowStartMinute:   11 * 60,
		WindowEndMinute:     13*60 + 30,
		CenterBonus:         10,
		CenterAdjacentBonus: 5,
		NaturalBreakBonus:   15,
		OneSidedBonus:       8,
		CrowdPenalty:        -20,
	}
}

// Window builds the candidate break slot grid for this policy.
func (p BreakPolicy) Window() (*scheduling.Grid, error) {
	return scheduling.NewGrid(p.WindowStartMinute, p.WindowEndMinute, p.BreakMinutes)
}

// MemberSchedule is one staff member's day of appointments as supplied by the
// collaborator layer. The coverage functions never fetch data themselves.
type MemberSchedule struct {
	StaffID      uuid.UUID                 `json:"staff_id"`
	Name         string                    `json:"name"`
	Appointments []*scheduling.Appointment `json:"appointments,omitempty"`
}

// StaffCoverage is the per-member break coverage analysis. Transient, never
// persisted.
type StaffCoverage struct {
	StaffID        uuid.UUID         `json:"staff_id"`
	Name           string            `json:"name"`
	DirectHours    float64           `json:"direct_hours"`
	NeedsBreak     bool              `json:"needs_break"`
	HasBreak       bool              `json:"has_break"`
	BreakSlot      *scheduling.Slot  `json:"break_slot,omitempty"`
	AvailableSlots []scheduling.Slot `json:"available_slots,omitempty"`
	BusySlots      []scheduling.Slot `json:"busy_slots,omitempty"`
	Warnings       []Warning         `json:"warnings,omitempty"`
}

// Assignment is one break the auto-scheduler placed.
type Assignment struct {
	StaffID   uuid.UUID `json:"staff_id"`
	Name      string    `json:"name"`
	SlotLabel string    `json:"slot_label"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Score     int       `json:"score"`
}

// Failure records a member the auto-scheduler could not place. Failures never
// abort the batch; other members still get assigned.
type Failure struct {
	StaffID uuid.UUID `json:"staff_id"`
	Name    string    `json:"name"`
	Reason  string    `json:"reason"`
}

// AutoScheduleResult is the outcome of one greedy auto-schedule pass.
type AutoScheduleResult struct {
	Assignments []Assignment `json:"assignments"`
	Failures    []Failure    `json:"failures"`
	Persisted   bool         `json:"persisted"`
}

// TeamWarning flags too many members of one team on break in the same slot.
type TeamWarning struct {
	SlotLabel string      `json:"slot_label"`
	StaffIDs  []uuid.UUID `json:"staff_ids"`
	Message   string      `json:"message"`
}

// TeamReport aggregates per-member coverage with team-level findings.
type TeamReport struct {
	TeamID       uuid.UUID       `json:"team_id"`
	Date         string          `json:"date"`
	Members      []StaffCoverage `json:"members"`
	TeamWarnings []TeamWarning   `json:"team_warnings,omitempty"`
}
