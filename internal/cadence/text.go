package cadence

import (
	"fmt"
	"math"
	"slices"
)

// DaysPerYear is the year length used for annual frequency estimates.
const DaysPerYear = 365

// PresetCadences are the cadence values offered as fixed choices.
var PresetCadences = []int{7, 14, 30, 90}

// CadenceOption describes one entry of the cadence picker.
type CadenceOption struct {
	Label  string `json:"label"`
	Days   *int   `json:"days"`
	Custom bool   `json:"custom,omitempty"`
}

// CadenceOptions lists the picker entries in display order.
func CadenceOptions() []CadenceOption {
	return []CadenceOption{
		{Label: "Weekly", Days: intPtr(7)},
		{Label: "Biweekly", Days: intPtr(14)},
		{Label: "Monthly", Days: intPtr(30)},
		{Label: "Quarterly", Days: intPtr(90)},
		{Label: "Custom", Custom: true},
		{Label: "No target"},
	}
}

// IsPresetCadence reports whether days is nil or one of PresetCadences.
// Anything else was entered as a custom cadence.
func IsPresetCadence(days *int) bool {
	if days == nil {
		return true
	}
	return slices.Contains(PresetCadences, *days)
}

// AnnualFrequency estimates how many interactions per year a cadence yields.
func AnnualFrequency(cadenceDays *int) (int, bool) {
	if cadenceDays == nil || *cadenceDays <= 0 {
		return 0, false
	}
	return int(math.Round(float64(DaysPerYear) / float64(*cadenceDays))), true
}

// AnnualFrequencyText formats AnnualFrequency as "~Nx per year", or "" when
// there is no cadence.
func AnnualFrequencyText(cadenceDays *int) string {
	n, ok := AnnualFrequency(cadenceDays)
	if !ok {
		return ""
	}
	return fmt.Sprintf("~%dx per year", n)
}

// StatusKind names the sentence used to describe a status.
type StatusKind string

// StatusKind values, in priority order.
const (
	StatusBackToday       StatusKind = "back_today"
	StatusBackTomorrow    StatusKind = "back_tomorrow"
	StatusAway            StatusKind = "away"
	StatusPlannedToday    StatusKind = "planned_today"
	StatusPlannedTomorrow StatusKind = "planned_tomorrow"
	StatusPlanned         StatusKind = "planned"
	StatusNoCadence       StatusKind = "no_cadence"
	StatusNeverSeen       StatusKind = "never_seen"
	StatusOverdue         StatusKind = "overdue"
	StatusDueIn           StatusKind = "due_in"
	StatusUntilDue        StatusKind = "until_due"
)

// StatusMessage is a status reduced to one sentence and its day count.
type StatusMessage struct {
	Kind  StatusKind
	Count int
}

// DescribeStatus picks the sentence for a status. The branches are checked
// in priority order; the first match wins. Overdue counts are positive.
func DescribeStatus(s ContactStatus) StatusMessage {
	switch {
	case s.IsAway:
		switch back := deref(s.DaysUntilBack); back {
		case 0:
			return StatusMessage{Kind: StatusBackToday}
		case 1:
			return StatusMessage{Kind: StatusBackTomorrow, Count: 1}
		default:
			return StatusMessage{Kind: StatusAway, Count: back}
		}

	case s.HasUpcomingEvent:
		switch next := deref(s.DaysUntilNextEvent); next {
		case 0:
			return StatusMessage{Kind: StatusPlannedToday}
		case 1:
			return StatusMessage{Kind: StatusPlannedTomorrow, Count: 1}
		default:
			return StatusMessage{Kind: StatusPlanned, Count: next}
		}

	case !s.HasCadence:
		return StatusMessage{Kind: StatusNoCadence}

	case s.DaysUntilDue == nil:
		return StatusMessage{Kind: StatusNeverSeen}

	case s.IsOverdue:
		n := *s.DaysUntilDue
		if n < 0 {
			n = -n
		}
		return StatusMessage{Kind: StatusOverdue, Count: n}

	case s.IsDue:
		return StatusMessage{Kind: StatusDueIn, Count: *s.DaysUntilDue}
	}

	return StatusMessage{Kind: StatusUntilDue, Count: *s.DaysUntilDue}
}

// StatusText renders a status as a short English sentence.
func StatusText(s ContactStatus) string {
	m := DescribeStatus(s)
	switch m.Kind {
	case StatusBackToday:
		return "Back today"
	case StatusBackTomorrow:
		return "Back tomorrow"
	case StatusAway:
		return fmt.Sprintf("Away for %d days", m.Count)
	case StatusPlannedToday:
		return "Planned for today"
	case StatusPlannedTomorrow:
		return "Planned for tomorrow"
	case StatusPlanned:
		return fmt.Sprintf("Planned in %d days", m.Count)
	case StatusNoCadence:
		return "No cadence set"
	case StatusNeverSeen:
		return "Never seen"
	case StatusOverdue:
		return fmt.Sprintf("%d %s overdue", m.Count, plural(m.Count, "day", "days"))
	case StatusDueIn:
		return fmt.Sprintf("Due in %d %s", m.Count, plural(m.Count, "day", "days"))
	}
	return fmt.Sprintf("%d days until due", m.Count)
}

// Tone is a coarse severity used for badges.
type Tone string

// Tone values.
const (
	ToneDestructive Tone = "destructive"
	ToneWarning     Tone = "warning"
	ToneSuccess     Tone = "success"
)

// StatusTone maps a status to its badge tone.
func StatusTone(s ContactStatus) Tone {
	switch {
	case s.IsOverdue:
		return ToneDestructive
	case s.IsDue:
		return ToneWarning
	default:
		return ToneSuccess
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
