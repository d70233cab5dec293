package cadence

import (
	"math"
	"time"
)

// Urgency band limits, in days until due.
const (
	DueWithinDays     = 7
	DueSoonWithinDays = 14
)

const day = 24 * time.Hour

// Facts are the temporal facts about one contact that the engine consumes.
// Nil pointers mean "absent": never contacted, no cadence, nothing planned.
type Facts struct {
	LastEventDate *time.Time
	CadenceDays   *int
	NextEventDate *time.Time
	OOOPeriods    []OOOPeriod
}

// ContactStatus is the derived, per-query view of a contact's cadence.
// At most one of IsDue, IsDueSoon and IsOverdue is set.
type ContactStatus struct {
	DaysSinceLastEvent *int `json:"daysSinceLastEvent"`
	DaysUntilDue       *int `json:"daysUntilDue"`
	IsDue              bool `json:"isDue"`
	IsDueSoon          bool `json:"isDueSoon"`
	IsOverdue          bool `json:"isOverdue"`
	HasCadence         bool `json:"hasCadence"`
	HasUpcomingEvent   bool `json:"hasUpcomingEvent"`
	DaysUntilNextEvent *int `json:"daysUntilNextEvent"`
	IsAway             bool `json:"isAway"`
	DaysUntilBack      *int `json:"daysUntilBack"`

	CurrentOOOPeriod *ActivePeriod `json:"currentOOOPeriod"`
	UpcomingOOOCount int           `json:"upcomingOOOCount"`
}

// CalculateStatus derives the ContactStatus of a contact at instant now.
func CalculateStatus(now time.Time, f Facts) ContactStatus {
	s := ContactStatus{
		HasCadence:       f.CadenceDays != nil,
		HasUpcomingEvent: f.NextEventDate != nil,
		UpcomingOOOCount: countUpcoming(now, f.OOOPeriods),
	}

	if f.LastEventDate != nil {
		s.DaysSinceLastEvent = intPtr(absDays(*f.LastEventDate, now))
	}
	if f.NextEventDate != nil {
		s.DaysUntilNextEvent = intPtr(daysBetween(now, *f.NextEventDate))
	}

	if p, ok := containing(now, f.OOOPeriods); ok {
		s.IsAway = true
		s.DaysUntilBack = intPtr(daysBetween(now, p.EndDate))
		s.CurrentOOOPeriod = &ActivePeriod{Label: p.Label, EndDate: p.EndDate}
	}

	if f.LastEventDate == nil || f.CadenceDays == nil {
		// Never contacted but tracked: due now, unless away or already planned.
		s.IsDue = !s.IsAway && f.LastEventDate == nil && s.HasCadence && !s.HasUpcomingEvent
		return s
	}

	due := AdjustedDueDate(*f.LastEventDate, *f.CadenceDays, f.OOOPeriods)
	daysUntil := daysBetween(now, due)
	s.DaysUntilDue = intPtr(daysUntil)

	if s.IsAway || s.HasUpcomingEvent {
		return s
	}

	switch {
	case daysUntil <= 0:
		s.IsOverdue = true
	case daysUntil <= DueWithinDays:
		s.IsDue = true
	case daysUntil <= DueSoonWithinDays:
		s.IsDueSoon = true
	}
	return s
}

// AdjustedDueDate is lastEvent plus cadenceDays calendar days, pushed past
// any out-of-office period it lands in.
func AdjustedDueDate(lastEvent time.Time, cadenceDays int, periods []OOOPeriod) time.Time {
	return NextAvailableDate(lastEvent.AddDate(0, 0, cadenceDays), periods)
}

// daysBetween returns the signed number of whole days from -> to, floored.
func daysBetween(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(day)))
}

// absDays returns the number of whole days separating a and b.
func absDays(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d / day)
}

func intPtr(v int) *int {
	return &v
}
