package engine

import (
	"errors"
	"time"

	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
)

// SnoozePlan lists the contacts a bulk snooze would postpone.
type SnoozePlan struct {
	RangeStart   time.Time      `json:"rangeStart"`
	RangeEnd     time.Time      `json:"rangeEnd"`
	SnoozedUntil time.Time      `json:"snoozedUntil"`
	Contacts     []SnoozeTarget `json:"contacts"`
}

// SnoozeTarget is one contact selected by a bulk snooze.
type SnoozeTarget struct {
	UID     string          `json:"uid"`
	Name    string          `json:"name"`
	DueDate time.Time       `json:"dueDate"`
	Kind    cadence.DueKind `json:"kind"`
}

// SelectForSnooze picks the contacts whose projected due date falls in
// [rangeStart, rangeEnd], both taken as whole calendar days in now's
// location. Contacts without a cadence or already snoozed are left alone.
// The selected contacts would be snoozed for snoozeDays from now.
func SelectForSnooze(contacts []ContactEntry, now, rangeStart, rangeEnd time.Time, snoozeDays int) (SnoozePlan, error) {
	if snoozeDays <= 0 {
		return SnoozePlan{}, errors.New(config.ErrSnoozeDays)
	}

	loc := now.Location()
	start := startOfDay(rangeStart.In(loc))
	end := startOfDay(rangeEnd.In(loc)).AddDate(0, 0, 1).Add(-time.Millisecond)
	if end.Before(start) {
		return SnoozePlan{}, errors.New(config.ErrSnoozeRange)
	}

	plan := SnoozePlan{
		RangeStart:   start,
		RangeEnd:     end,
		SnoozedUntil: now.Add(time.Duration(snoozeDays) * 24 * time.Hour),
		Contacts:     []SnoozeTarget{},
	}

	for _, c := range contacts {
		c.settleEvents(now)
		facts := c.ScheduleFacts()
		if facts.CadenceDays == nil || facts.IsSnoozed(now) {
			continue
		}
		due, ok := cadence.ProjectDueDate(now, facts)
		if !ok || due.Date.Before(start) || due.Date.After(end) {
			continue
		}
		plan.Contacts = append(plan.Contacts, SnoozeTarget{
			UID:     c.UID,
			Name:    c.Name,
			DueDate: due.Date,
			Kind:    due.Kind,
		})
	}
	return plan, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
