package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Policy holds the validation constants. These are operational policy, not
// mechanism: callers inject them, typically starting from DefaultPolicy.
type Policy struct {
	MinDuration         time.Duration `json:"min_duration"`
	ConflictBuffer      time.Duration `json:"conflict_buffer"`
	DailyCap            time.Duration `json:"daily_cap"`
	ApproachFraction    float64       `json:"approach_fraction"`
	HardCheckSupervisor bool          `json:"hard_check_supervisor"`
}

// DefaultPolicy returns the reference policy: 30-minute minimum sessions, a
// 15-minute tight-scheduling buffer, an 8-hour patient day capped softly at
// 80%, and supervisors exempt from hard conflict checks.
func DefaultPolicy() Policy {
	return Policy{
		MinDuration:      30 * time.Minute,
		ConflictBuffer:   15 * time.Minute,
		DailyCap:         8 * time.Hour,
		ApproachFraction: 0.8,
	}
}

// Validator decides whether a candidate appointment is legal against an
// existing appointment set. It holds no state beyond its policy; the same
// inputs always produce the same result.
type Validator struct {
	policy Policy
}

func NewValidator(policy Policy) *Validator {
	return &Validator{policy: policy}
}

// Validate checks the candidate in order: required fields, time ordering and
// minimum duration (both short-circuit), then conflicts for patient and
// staff (accumulated together), then the patient's daily load as a warning.
// The candidate's own ID is excluded from conflict checks so updates do not
// collide with their prior version.
func (v *Validator) Validate(candidate *Appointment, existing []*Appointment) ValidationResult {
	result := ValidationResult{Valid: true}

	// 1. Required fields.
	if candidate.StaffID == uuid.Nil {
		result.addError(ErrKindMissingStaff, "staff member is required")
	}
	if candidate.StartTime.IsZero() || candidate.EndTime.IsZero() {
		result.addError(ErrKindMissingTime, "start and end times are required")
	}
	if candidate.Status != "" && !validStatuses[candidate.Status] {
		result.addError(ErrKindInvalidStatus, fmt.Sprintf("invalid status %q", candidate.Status))
	}
	if !result.Valid {
		return result
	}

	// 2. Interval well-formedness. Conflict and load checks are skipped on
	// failure since the interval is meaningless.
	if !candidate.EndTime.After(candidate.StartTime) {
		result.addError(ErrKindEndNotAfterStart, "end time must be after start time")
		return result
	}
	if candidate.Duration() < v.policy.MinDuration {
		result.addError(ErrKindDurationTooShort,
			fmt.Sprintf("session must be at least %d minutes", int(v.policy.MinDuration.Minutes())))
		return result
	}

	// 3. Double-booking. Both subject classes are checked and reported
	// together; neither short-circuits the other.
	if candidate.PatientID != nil {
		conflicts := PatientConflicts(*candidate.PatientID, candidate.StartTime, candidate.EndTime, existing, candidate.ID)
		if len(conflicts) > 0 {
			result.addError(ErrKindPatientConflict,
				fmt.Sprintf("patient already has %d overlapping appointment(s)", len(conflicts)))
			for _, c := range conflicts {
				result.ConflictIDs = append(result.ConflictIDs, c.ID)
			}
		}
	}
	staffConflicts := StaffConflicts(candidate.StaffID, candidate.StartTime, candidate.EndTime, existing, candidate.ID)
	if len(staffConflicts) > 0 {
		result.addError(ErrKindStaffConflict,
			fmt.Sprintf("staff member already has %d overlapping appointment(s)", len(staffConflicts)))
		for _, c := range staffConflicts {
			result.ConflictIDs = append(result.ConflictIDs, c.ID)
		}
	}

	// Near-misses for the staff member are soft.
	if tight := TightBookings(candidate.StaffID, candidate.StartTime, candidate.EndTime, existing, candidate.ID, v.policy.ConflictBuffer); len(tight) > 0 {
		result.addWarning(WarnKindTightSchedule,
			fmt.Sprintf("staff member has %d booking(s) within %d minutes", len(tight), int(v.policy.ConflictBuffer.Minutes())))
	}

	// Supervisor overlaps are policy: hard-blocked only when configured,
	// otherwise surfaced as tight-schedule warnings.
	if candidate.SupervisorID != nil {
		supConflicts := StaffConflicts(*candidate.SupervisorID, candidate.StartTime, candidate.EndTime, existing, candidate.ID)
		if v.policy.HardCheckSupervisor && len(supConflicts) > 0 {
			result.addError(ErrKindStaffConflict,
				fmt.Sprintf("supervisor already has %d overlapping appointment(s)", len(supConflicts)))
			for _, c := range supConflicts {
				result.ConflictIDs = append(result.ConflictIDs, c.ID)
			}
		} else if len(supConflicts) > 0 {
			result.addWarning(WarnKindTightSchedule,
				fmt.Sprintf("supervisor has %d overlapping booking(s)", len(supConflicts)))
		} else if tight := TightBookings(*candidate.SupervisorID, candidate.StartTime, candidate.EndTime, existing, candidate.ID, v.policy.ConflictBuffer); len(tight) > 0 {
			result.addWarning(WarnKindTightSchedule,
				fmt.Sprintf("supervisor has %d booking(s) within %d minutes", len(tight), int(v.policy.ConflictBuffer.Minutes())))
		}
	}

	// 4. Daily load is a soft operational signal, never a legality rule.
	if candidate.PatientID != nil {
		load := CheckDailyLoad(*candidate.PatientID, candidate.StartTime, candidate.Duration(),
			existing, v.policy.DailyCap, v.policy.ApproachFraction, candidate.ID)
		if load.Exceeds {
			result.addWarning(WarnKindExceedsDailyCap,
				fmt.Sprintf("patient would be booked %.1f hours, over the %.0f hour daily cap", load.TotalHours, load.CapHours))
		} else if load.Approaching {
			result.addWarning(WarnKindApproachingDailyCap,
				fmt.Sprintf("patient would be booked %.1f of %.0f daily hours", load.TotalHours, load.CapHours))
		}
	}

	return result
}
