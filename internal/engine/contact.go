package engine

import (
	"time"

	"github.com/redoswald/all-friends/internal/cadence"
)

// ContactEntry is a contact record with its derived cadence state.
// It decouples the API and the calendar feed from vCard parsing.
type ContactEntry struct {
	// UID is the vCard UID, or a name-derived UUID when the card has none.
	UID string `json:"uid"`

	// Name is the display name (Formatted Name or Structured Name).
	Name string `json:"name"`

	CadenceDays   *int                `json:"cadenceDays"`
	LastEventDate *time.Time          `json:"lastEventDate"`
	NextEventDate *time.Time          `json:"nextEventDate"`
	SnoozedUntil  *time.Time          `json:"snoozedUntil"`
	OOOPeriods    []cadence.OOOPeriod `json:"oooPeriods"`

	Status          cadence.ContactStatus `json:"status"`
	StatusText      string                `json:"statusText"`
	Tone            cadence.Tone          `json:"tone"`
	AnnualFrequency string                `json:"annualFrequency,omitempty"`

	// Due is the projected next due date; nil when the contact has no cadence.
	Due *cadence.DueProjection `json:"due,omitempty"`
}

// Facts returns the inputs of the cadence engine for this contact.
func (e ContactEntry) Facts() cadence.Facts {
	return cadence.Facts{
		LastEventDate: e.LastEventDate,
		CadenceDays:   e.CadenceDays,
		NextEventDate: e.NextEventDate,
		OOOPeriods:    e.OOOPeriods,
	}
}

// ScheduleFacts adds the snooze to Facts.
func (e ContactEntry) ScheduleFacts() cadence.ScheduleFacts {
	return cadence.ScheduleFacts{Facts: e.Facts(), SnoozedUntil: e.SnoozedUntil}
}

// NeedsAttention reports whether the contact is due or overdue and not snoozed.
func (e ContactEntry) NeedsAttention(now time.Time) bool {
	if e.ScheduleFacts().IsSnoozed(now) {
		return false
	}
	return e.Status.IsDue || e.Status.IsOverdue
}

// settleEvents moves a planned event that is no longer in the future into
// the event history. Only the most recent past event is kept.
func (e *ContactEntry) settleEvents(now time.Time) {
	if e.NextEventDate == nil || e.NextEventDate.After(now) {
		return
	}
	if e.LastEventDate == nil || e.NextEventDate.After(*e.LastEventDate) {
		e.LastEventDate = e.NextEventDate
	}
	e.NextEventDate = nil
}

// evaluate fills the derived fields at instant now.
func (e *ContactEntry) evaluate(now time.Time, formatStatus func(cadence.ContactStatus) string) {
	e.settleEvents(now)
	e.Status = cadence.CalculateStatus(now, e.Facts())
	e.StatusText = formatStatus(e.Status)
	e.Tone = cadence.StatusTone(e.Status)
	e.AnnualFrequency = cadence.AnnualFrequencyText(e.CadenceDays)

	e.Due = nil
	if p, ok := cadence.ProjectDueDate(now, e.ScheduleFacts()); ok {
		e.Due = &p
	}
}
