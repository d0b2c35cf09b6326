package scheduling

import "sort"

// GroupConsecutive merges one subject's appointments for a day into display
// groups. Two adjacent appointments merge when they share the same patient
// and category and the first ends exactly when the second starts. The input
// is sorted by start time before grouping; grid may be nil, in which case
// slot spans are left at zero.
func GroupConsecutive(appts []*Appointment, grid *Grid) []SessionGroup {
	active := make([]*Appointment, 0, len(appts))
	for _, a := range appts {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StartTime.Before(active[j].StartTime)
	})

	var groups []SessionGroup
	for _, a := range active {
		if n := len(groups); n > 0 && mergeable(&groups[n-1], a) {
			g := &groups[n-1]
			g.EndTime = a.EndTime
			g.Appointments = append(g.Appointments, a)
			continue
		}
		groups = append(groups, SessionGroup{
			StartTime:    a.StartTime,
			EndTime:      a.EndTime,
			Category:     a.Category,
			Appointments: []*Appointment{a},
		})
	}

	if grid != nil {
		for i := range groups {
			minutes := int(groups[i].EndTime.Sub(groups[i].StartTime).Minutes())
			groups[i].SlotSpan = grid.SpanCount(minutes)
		}
	}
	return groups
}

func mergeable(g *SessionGroup, a *Appointment) bool {
	if !g.EndTime.Equal(a.StartTime) {
		return false
	}
	if g.Category != a.Category {
		return false
	}
	last := g.Appointments[len(g.Appointments)-1]
	if last.PatientID == nil || a.PatientID == nil {
		return last.PatientID == nil && a.PatientID == nil && last.StaffID == a.StaffID
	}
	return *last.PatientID == *a.PatientID
}
