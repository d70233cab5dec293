package cadence

import "time"

// OOOPeriod is a window during which a contact is unavailable.
// Both bounds are inclusive. Periods may overlap one another.
type OOOPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Label     *string   `json:"label"`
}

// Contains reports whether t falls inside the period, bounds included.
func (p OOOPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// ActivePeriod is the subset of an OOOPeriod exposed on a ContactStatus.
type ActivePeriod struct {
	Label   *string   `json:"label"`
	EndDate time.Time `json:"endDate"`
}

// NextAvailableDate returns the earliest instant at or after candidate that
// lies outside every period.
//
// Whenever the candidate falls inside a period it moves to the day after that
// period ends and the whole set is scanned again, so chained or overlapping
// windows are resolved. Each move leaves the candidate strictly after the end
// of the period that caused it, so that period can never match again and the
// loop performs at most len(periods) moves.
func NextAvailableDate(candidate time.Time, periods []OOOPeriod) time.Time {
	for moves := 0; moves <= len(periods); moves++ {
		p, ok := containing(candidate, periods)
		if !ok {
			return candidate
		}
		candidate = p.EndDate.AddDate(0, 0, 1)
	}
	return candidate
}

// containing returns the first period that contains t.
func containing(t time.Time, periods []OOOPeriod) (OOOPeriod, bool) {
	for _, p := range periods {
		if p.Contains(t) {
			return p, true
		}
	}
	return OOOPeriod{}, false
}

// countUpcoming counts periods that start strictly after now.
func countUpcoming(now time.Time, periods []OOOPeriod) int {
	n := 0
	for _, p := range periods {
		if p.StartDate.After(now) {
			n++
		}
	}
	return n
}
