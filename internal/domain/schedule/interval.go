package schedule

import "fmt"

// ToMinutes converts "HH:MM" to minutes from midnight. Malformed input
// must be rejected by validators before it reaches this package.
func ToMinutes(hm string) int {
	var h, m int
	fmt.Sscanf(hm, "%d:%d", &h, &m)
	return h*60 + m
}

// FromMinutes converts minutes from midnight back to "HH:MM".
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. An interval ending exactly when another starts does not
// overlap it, and zero-length intervals never overlap anything.
// Every overlap decision in the system (breaks, blocks, appointments)
// goes through this predicate.
func Overlaps(s1, e1, s2, e2 string) bool {
	return ToMinutes(s1) < ToMinutes(e2) && ToMinutes(s2) < ToMinutes(e1)
}

// OverlapsMin is Overlaps over already-converted minute values.
func OverlapsMin(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
