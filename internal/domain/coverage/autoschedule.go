package coverage

import (
	"time"

	"github.com/carebridge/scheduler/internal/domain/scheduling"
)

// AutoScheduleBreaks assigns a break slot to every member who needs one and
// has none, one member at a time in roster order. Each candidate slot is
// scored and the best one wins; ties keep the earliest candidate. The pass is
// greedy and never backtracks, so an early assignment can crowd out a later
// member; such members surface as failures rather than aborting the batch.
// Deterministic for a fixed input snapshot.
func AutoScheduleBreaks(policy BreakPolicy, day time.Time, members []MemberSchedule) (AutoScheduleResult, error) {
	grid, err := policy.Window()
	if err != nil {
		return AutoScheduleResult{}, err
	}

	result := AutoScheduleResult{}
	teamSize := len(members)
	crowdThreshold := (teamSize + 1) / 2

	// Per-slot count of members already on break, seeded from existing break
	// appointments and grown as assignments are made.
	onBreak := make([]int, len(grid.Slots))
	for _, m := range members {
		for _, a := range m.Appointments {
			if !a.IsActive() || a.Category != scheduling.CategoryBreak {
				continue
			}
			for i, slot := range grid.Slots {
				if scheduling.Overlaps(slot.StartOn(day), slot.EndOn(day), a.StartTime, a.EndTime) {
					onBreak[i]++
				}
			}
		}
	}

	centerIdx := grid.ClampedIndex((policy.WindowStartMinute + policy.WindowEndMinute) / 2)

	for _, m := range members {
		cov := AnalyzeStaff(policy, day, m, grid)
		if !cov.NeedsBreak || cov.HasBreak {
			continue
		}
		if len(cov.AvailableSlots) == 0 {
			result.Failures = append(result.Failures, Failure{
				StaffID: m.StaffID,
				Name:    m.Name,
				Reason:  "no open slot in the break window",
			})
			continue
		}

		best := -1
		bestScore := 0
		for _, slot := range cov.AvailableSlots {
			idx, ok := grid.SlotIndexContaining(slot.StartMinute)
			if !ok {
				continue
			}
			score := scoreSlot(policy, day, slot, idx, centerIdx, m.Appointments, onBreak[idx] >= crowdThreshold)
			if best == -1 || score > bestScore {
				best, bestScore = idx, score
			}
		}
		if best == -1 {
			result.Failures = append(result.Failures, Failure{
				StaffID: m.StaffID,
				Name:    m.Name,
				Reason:  "no open slot in the break window",
			})
			continue
		}

		chosen := grid.Slots[best]
		result.Assignments = append(result.Assignments, Assignment{
			StaffID:   m.StaffID,
			Name:      m.Name,
			SlotLabel: chosen.Label,
			StartTime: chosen.StartOn(day),
			EndTime:   chosen.EndOn(day),
			Score:     bestScore,
		})
		onBreak[best]++
	}
	return result, nil
}

// scoreSlot rates one open candidate slot for one member. A slot bounded on
// both sides by that member's own sessions is a natural break and scores
// highest; the window's center slot and its neighbours get smaller bonuses.
// The crowd penalty applies when enough teammates are already on break during
// the slot.
func scoreSlot(policy BreakPolicy, day time.Time, slot scheduling.Slot, idx, centerIdx int, appts []*scheduling.Appointment, crowded bool) int {
	score := 0
	switch {
	case idx == centerIdx:
		score += policy.CenterBonus
	case idx == centerIdx-1 || idx == centerIdx+1:
		score += policy.CenterAdjacentBonus
	}

	start, end := slot.StartOn(day), slot.EndOn(day)
	boundedLeft, boundedRight := false, false
	for _, a := range appts {
		if !a.IsActive() {
			continue
		}
		if a.EndTime.Equal(start) {
			boundedLeft = true
		}
		if a.StartTime.Equal(end) {
			boundedRight = true
		}
	}
	switch {
	case boundedLeft && boundedRight:
		score += policy.NaturalBreakBonus
	case boundedLeft || boundedRight:
		score += policy.OneSidedBonus
	}

	if crowded {
		score += policy.CrowdPenalty
	}
	return score
}
