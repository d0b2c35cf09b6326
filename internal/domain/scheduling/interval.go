package scheduling

import "time"

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// WithinBuffer reports whether two non-overlapping intervals sit closer
// together than buffer. Used to flag tight scheduling rather than a hard
// conflict: a true result means the gap between the intervals is smaller
// than buffer but the intervals themselves do not intersect.
func WithinBuffer(aStart, aEnd, bStart, bEnd time.Time, buffer time.Duration) bool {
	if Overlaps(aStart, aEnd, bStart, bEnd) {
		return false
	}
	var gap time.Duration
	if !aEnd.After(bStart) {
		gap = bStart.Sub(aEnd)
	} else {
		gap = aStart.Sub(bEnd)
	}
	return gap < buffer
}

// sameCalendarDay reports whether both instants fall on the same calendar
// day in t's location.
func sameCalendarDay(t, u time.Time) bool {
	ty, tm, td := t.Date()
	uy, um, ud := u.In(t.Location()).Date()
	return ty == uy && tm == um && td == ud
}
