package scheduling

import (
	"fmt"
	"time"
)

// Slot is a fixed-width time bucket inside a location's operating hours,
// expressed as a half-open [StartMinute,EndMinute) minute-of-day range.
type Slot struct {
	Label       string `json:"label"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// StartOn returns the slot's start instant on the given calendar day.
func (s Slot) StartOn(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, s.StartMinute, 0, 0, day.Location())
}

// EndOn returns the slot's end instant on the given calendar day.
func (s Slot) EndOn(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, s.EndMinute, 0, 0, day.Location())
}

// Grid is the ordered sequence of slots derived from a location's operating
// hours and slot granularity. Grids are immutable once built.
type Grid struct {
	SlotMinutes int    `json:"slot_minutes"`
	Slots       []Slot `json:"slots"`
}

// NewGrid builds a slot grid covering [openMinute,closeMinute) in slots of
// slotMinutes each. A trailing remainder shorter than slotMinutes becomes a
// final short slot so the grid always covers the full operating range.
func NewGrid(openMinute, closeMinute, slotMinutes int) (*Grid, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("slot size must be positive, got %d", slotMinutes)
	}
	if openMinute < 0 || closeMinute > 24*60 || openMinute >= closeMinute {
		return nil, fmt.Errorf("invalid operating hours [%d,%d)", openMinute, closeMinute)
	}

	g := &Grid{SlotMinutes: slotMinutes}
	for start := openMinute; start < closeMinute; start += slotMinutes {
		end := start + slotMinutes
		if end > closeMinute {
			end = closeMinute
		}
		g.Slots = append(g.Slots, Slot{
			Label:       fmt.Sprintf("%s - %s", minuteLabel(start), minuteLabel(end)),
			StartMinute: start,
			EndMinute:   end,
		})
	}
	return g, nil
}

func minuteLabel(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// SlotIndexContaining returns the index of the slot whose half-open range
// contains the given minute of day, or false when the minute falls outside
// operating hours.
func (g *Grid) SlotIndexContaining(minuteOfDay int) (int, bool) {
	for i, s := range g.Slots {
		if minuteOfDay >= s.StartMinute && minuteOfDay < s.EndMinute {
			return i, true
		}
	}
	return 0, false
}

// ClampedIndex maps a minute of day to a slot index, clamping values before
// opening to the first slot and values at or past closing to the last slot.
// The appointment itself is never truncated; clamping only affects which
// slot the timestamp is displayed against.
func (g *Grid) ClampedIndex(minuteOfDay int) int {
	if len(g.Slots) == 0 {
		return 0
	}
	if minuteOfDay < g.Slots[0].StartMinute {
		return 0
	}
	if minuteOfDay >= g.Slots[len(g.Slots)-1].EndMinute {
		return len(g.Slots) - 1
	}
	idx, _ := g.SlotIndexContaining(minuteOfDay)
	return idx
}

// SpanCount returns how many slots a booking of the given duration occupies,
// rounding partial slots up.
func (g *Grid) SpanCount(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + g.SlotMinutes - 1) / g.SlotMinutes
}

// minuteOfDay converts an instant to minutes past midnight in its location.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
