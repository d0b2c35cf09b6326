package coverage

import (
	"fmt"
	"strings"
	"time"

	"github.com/carebridge/scheduler/internal/domain/scheduling"
)

// AnalyzeStaff evaluates break coverage for one staff member on one calendar
// day. Only active appointments count; only direct-care sessions accrue
// working hours. Exactly one of the three warning states is emitted: the
// member needs a break and one can be placed, needs one and the window is
// fully booked, or has a break that the day's workload does not call for.
func AnalyzeStaff(policy BreakPolicy, day time.Time, member MemberSchedule, grid *scheduling.Grid) StaffCoverage {
	cov := StaffCoverage{StaffID: member.StaffID, Name: member.Name}

	var directWork time.Duration
	var active []*scheduling.Appointment
	for _, a := range member.Appointments {
		if !a.IsActive() {
			continue
		}
		active = append(active, a)
		if a.Category == scheduling.CategoryBreak {
			cov.HasBreak = true
			if idx, ok := grid.SlotIndexContaining(minuteOfDay(a.StartTime)); ok {
				slot := grid.Slots[idx]
				cov.BreakSlot = &slot
			}
		}
		if a.Category == scheduling.CategoryDirect {
			directWork += a.Duration()
		}
	}
	cov.DirectHours = directWork.Hours()
	cov.NeedsBreak = directWork >= policy.RequiredAfter

	for _, slot := range grid.Slots {
		if slotBusy(slot, day, active) {
			cov.BusySlots = append(cov.BusySlots, slot)
		} else {
			cov.AvailableSlots = append(cov.AvailableSlots, slot)
		}
	}

	switch {
	case cov.NeedsBreak && !cov.HasBreak && len(cov.AvailableSlots) > 0:
		cov.Warnings = append(cov.Warnings, Warning{
			Kind:     WarnKindBreakSchedulable,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%s needs a break; open slots: %s",
				member.Name, slotLabels(cov.AvailableSlots)),
		})
	case cov.NeedsBreak && !cov.HasBreak:
		cov.Warnings = append(cov.Warnings, Warning{
			Kind:     WarnKindBreakBlocked,
			Severity: SeverityError,
			Message:  fmt.Sprintf("%s needs a break but the break window is fully booked", member.Name),
		})
	case cov.HasBreak && !cov.NeedsBreak:
		cov.Warnings = append(cov.Warnings, Warning{
			Kind:     WarnKindBreakUnneeded,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("%s has a break scheduled but under %.0fh of direct work", member.Name, policy.RequiredAfter.Hours()),
		})
	}
	return cov
}

func slotBusy(slot scheduling.Slot, day time.Time, appts []*scheduling.Appointment) bool {
	start, end := slot.StartOn(day), slot.EndOn(day)
	for _, a := range appts {
		if scheduling.Overlaps(start, end, a.StartTime, a.EndTime) {
			return true
		}
	}
	return false
}

func slotLabels(slots []scheduling.Slot) string {
	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Label
	}
	return strings.Join(labels, ", ")
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
