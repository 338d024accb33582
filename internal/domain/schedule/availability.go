package schedule

// NoCutoff disables the same-day lead-time filter in FreeSlots.
const NoCutoff = -1

// LeadTimeMin is the minimum notice before a same-day slot may start.
const LeadTimeMin = 30

// DayInput is everything FreeSlots needs, already resolved: the effective
// work rule, the effective break list, the blocks for the date (global
// plus master-specific) and the intervals of active appointments.
type DayInput struct {
	Rule        Rule
	Breaks      []Window
	Blocks      []Window
	Booked      []Window
	DurationMin int

	// CutoffMin drops candidates starting before this minute of day;
	// NoCutoff for dates other than today.
	CutoffMin int
}

// FreeSlots enumerates bookable start times ("HH:MM", ascending) for one
// day. Candidates run from the rule's start in SlotStepMin increments
// (the step, not the service duration) while the full service still fits
// before the rule's end. A candidate survives iff its interval overlaps
// no break, no block and no booked appointment.
//
// The result is advisory: the booking ledger re-checks conflicts
// atomically at commit time.
func FreeSlots(in DayInput) []string {
	if in.DurationMin <= 0 || in.Rule.SlotStepMin <= 0 {
		return []string{}
	}

	start := ToMinutes(in.Rule.StartTime)
	end := ToMinutes(in.Rule.EndTime)

	slots := []string{}
	for t := start; t+in.DurationMin <= end; t += in.Rule.SlotStepMin {
		if in.CutoffMin != NoCutoff && t < in.CutoffMin {
			continue
		}
		if anyOverlap(t, t+in.DurationMin, in.Breaks) ||
			anyOverlap(t, t+in.DurationMin, in.Blocks) ||
			anyOverlap(t, t+in.DurationMin, in.Booked) {
			continue
		}
		slots = append(slots, FromMinutes(t))
	}
	return slots
}

func anyOverlap(s, e int, ws []Window) bool {
	for _, w := range ws {
		if OverlapsMin(s, e, ToMinutes(w.Start), ToMinutes(w.End)) {
			return true
		}
	}
	return false
}
