package coverage

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/carebridge/scheduler/internal/domain/scheduling"
)

// ValidateTeamCoverage aggregates each member's coverage analysis and flags
// slots where ceil(teamSize/2) or more members are on break at once. Break
// starts are rounded down to the policy's slot width before grouping so that
// off-grid breaks still bucket together. Reporting only, assigns nothing.
func ValidateTeamCoverage(policy BreakPolicy, day time.Time, members []MemberSchedule) ([]StaffCoverage, []TeamWarning, error) {
	grid, err := policy.Window()
	if err != nil {
		return nil, nil, err
	}

	covs := make([]StaffCoverage, 0, len(members))
	bySlot := map[int][]uuid.UUID{}
	for _, m := range members {
		covs = append(covs, AnalyzeStaff(policy, day, m, grid))
		for _, a := range m.Appointments {
			if !a.IsActive() || a.Category != scheduling.CategoryBreak {
				continue
			}
			minute := minuteOfDay(a.StartTime)
			minute -= minute % policy.BreakMinutes
			bySlot[minute] = append(bySlot[minute], m.StaffID)
		}
	}

	threshold := (len(members) + 1) / 2
	minutes := make([]int, 0, len(bySlot))
	for minute := range bySlot {
		minutes = append(minutes, minute)
	}
	sort.Ints(minutes)

	var warnings []TeamWarning
	for _, minute := range minutes {
		ids := bySlot[minute]
		if len(ids) < threshold || threshold == 0 {
			continue
		}
		label := slotLabelAt(grid, minute, policy.BreakMinutes)
		warnings = append(warnings, TeamWarning{
			SlotLabel: label,
			StaffIDs:  ids,
			Message:   fmt.Sprintf("%d of %d team members on break during %s", len(ids), len(members), label),
		})
	}
	return covs, warnings, nil
}

func slotLabelAt(grid *scheduling.Grid, minute, width int) string {
	if idx, ok := grid.SlotIndexContaining(minute); ok {
		return grid.Slots[idx].Label
	}
	return fmt.Sprintf("%02d:%02d - %02d:%02d", minute/60, minute%60, (minute+width)/60, (minute+width)%60)
}
