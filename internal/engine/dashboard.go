package engine

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// DashboardStats counts contacts per state.
type DashboardStats struct {
	TotalContacts   int `json:"totalContacts"`
	OverdueContacts int `json:"overdueContacts"`
	DueContacts     int `json:"dueContacts"`
	AwayContacts    int `json:"awayContacts"`
	PlannedContacts int `json:"plannedContacts"`
}

// Dashboard is the summary view of an evaluated address book.
type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	NeedsAttention []ContactEntry `json:"needsAttention"`
}

// BuildDashboard groups evaluated contacts. Snoozed contacts are not counted
// as overdue or due. NeedsAttention lists the due or
// overdue contacts that are not snoozed: overdue first, then soonest due,
// then by name.
func BuildDashboard(contacts []ContactEntry, now time.Time) Dashboard {
	d := Dashboard{
		Stats:          DashboardStats{TotalContacts: len(contacts)},
		NeedsAttention: []ContactEntry{},
	}

	for _, c := range contacts {
		if !c.ScheduleFacts().IsSnoozed(now) {
			switch {
			case c.Status.IsOverdue:
				d.Stats.OverdueContacts++
			case c.Status.IsDue:
				d.Stats.DueContacts++
			}
		}
		if c.Status.IsAway {
			d.Stats.AwayContacts++
		}
		if c.Status.HasUpcomingEvent {
			d.Stats.PlannedContacts++
		}
		if c.NeedsAttention(now) {
			d.NeedsAttention = append(d.NeedsAttention, c)
		}
	}

	slices.SortStableFunc(d.NeedsAttention, func(a, b ContactEntry) int {
		if a.Status.IsOverdue != b.Status.IsOverdue {
			if a.Status.IsOverdue {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(dueRank(a), dueRank(b)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return d
}

// dueRank orders contacts without a due count (never seen) first.
func dueRank(c ContactEntry) int {
	if c.Status.DaysUntilDue == nil {
		return math.MinInt
	}
	return *c.Status.DaysUntilDue
}
