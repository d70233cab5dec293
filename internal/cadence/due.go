package cadence

import "time"

// DueKind tells where a projected due date comes from.
type DueKind string

// DueKind values, in projection priority order.
const (
	DueSnoozed DueKind = "snoozed"
	DuePlanned DueKind = "planned"
	DueCadence DueKind = "cadence"
	DueNever   DueKind = "never"
)

// ScheduleFacts extends Facts with the externally managed snooze.
type ScheduleFacts struct {
	Facts
	SnoozedUntil *time.Time
}

// IsSnoozed reports whether the snooze is still running at now.
func (f ScheduleFacts) IsSnoozed(now time.Time) bool {
	return f.SnoozedUntil != nil && f.SnoozedUntil.After(now)
}

// DueProjection is the next date on which a contact should be reached.
type DueProjection struct {
	Date time.Time `json:"date"`
	Kind DueKind   `json:"kind"`
}

// ProjectDueDate projects a contact's next due date at instant now.
//
// An active snooze wins. Otherwise the date is cadenceDays after the planned
// future interaction, or after the last past one, or now for a contact never
// seen. Cadence-derived dates are moved out of OOO periods. Contacts without a
// cadence have no projection.
func ProjectDueDate(now time.Time, f ScheduleFacts) (DueProjection, bool) {
	if f.CadenceDays == nil {
		return DueProjection{}, false
	}

	if f.IsSnoozed(now) {
		return DueProjection{Date: *f.SnoozedUntil, Kind: DueSnoozed}, true
	}

	cadence := *f.CadenceDays
	switch {
	case f.NextEventDate != nil:
		return DueProjection{
			Date: AdjustedDueDate(*f.NextEventDate, cadence, f.OOOPeriods),
			Kind: DuePlanned,
		}, true

	case f.LastEventDate != nil:
		return DueProjection{
			Date: AdjustedDueDate(*f.LastEventDate, cadence, f.OOOPeriods),
			Kind: DueCadence,
		}, true
	}

	return DueProjection{Date: NextAvailableDate(now, f.OOOPeriods), Kind: DueNever}, true
}
