package scheduling

import (
	"testing"
	"time"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestOverlapsHalfOpen(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"touching endpoints do not overlap", ts(9, 0), ts(9, 30), ts(9, 30), ts(10, 0), false},
		{"one minute of overlap", ts(9, 0), ts(9, 30), ts(9, 29), ts(10, 0), true},
		{"identical intervals", ts(9, 0), ts(10, 0), ts(9, 0), ts(10, 0), true},
		{"containment", ts(9, 0), ts(12, 0), ts(10, 0), ts(11, 0), true},
		{"disjoint", ts(9, 0), ts(10, 0), ts(11, 0), ts(12, 0), false},
		{"reversed order touching", ts(9, 30), ts(10, 0), ts(9, 0), ts(9, 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestWithinBuffer(t *testing.T) {
	buffer := 15 * time.Minute

	// 10-minute gap, inside the buffer
	if !WithinBuffer(ts(9, 0), ts(9, 30), ts(9, 40), ts(10, 0), buffer) {
		t.Error("10-minute gap should be within a 15-minute buffer")
	}
	// gap exactly equal to the buffer is not tight
	if WithinBuffer(ts(9, 0), ts(9, 30), ts(9, 45), ts(10, 0), buffer) {
		t.Error("15-minute gap should not be within a 15-minute buffer")
	}
	// overlapping intervals are a conflict, not a near-miss
	if WithinBuffer(ts(9, 0), ts(9, 30), ts(9, 15), ts(10, 0), buffer) {
		t.Error("overlapping intervals must not report as within buffer")
	}
	// order-independent: the other interval may come first
	if !WithinBuffer(ts(9, 40), ts(10, 0), ts(9, 0), ts(9, 30), buffer) {
		t.Error("buffer check should be symmetric in interval order")
	}
	// back-to-back bookings have zero gap and are tight
	if !WithinBuffer(ts(9, 0), ts(9, 30), ts(9, 30), ts(10, 0), buffer) {
		t.Error("zero-gap adjacent bookings should be within the buffer")
	}
}
