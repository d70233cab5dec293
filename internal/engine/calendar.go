package engine

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
)

// BuildCalendar renders the reminder feed for contacts evaluated at now.
//
// Each contact with a projected due date yields one all-day event on that
// date. Each OOO period yields a transparent all-day event spanning it. An
// empty feed is still a valid VCALENDAR.
func (g *Generator) BuildCalendar(contacts []ContactEntry, now time.Time, reminderTrigger string) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	loc := now.Location()
	for _, c := range contacts {
		var events []*ical.Event
		if c.Due != nil {
			events = append(events, g.dueEvent(c, loc, reminderTrigger))
		}
		for i, p := range c.OOOPeriods {
			events = append(events, g.awayEvent(c, i, p, loc))
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) dueEvent(c ContactEntry, loc *time.Location, reminderTrigger string) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, c.UID, c.Due.Kind, config.ICalDomain))

	summary := g.summary(c.Name, c.Due.Kind)
	event.Props.SetText(config.PropSummary, summary)
	event.Props.SetText(config.PropDescription, c.StatusText)
	event.Props.SetText(config.PropCategories, string(c.Due.Kind))

	event.Props.Set(dateProp(config.PropDTStart, c.Due.Date.In(loc)))

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	return event
}

func (g *Generator) awayEvent(c ContactEntry, idx int, p cadence.OOOPeriod, loc *time.Location) *ical.Event {
	kind := fmt.Sprintf(config.FormatOOOUID, config.UIDKindOOO, idx)

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, c.UID, kind, config.ICalDomain))
	event.Props.SetText(config.PropSummary, g.away(c.Name, p.Label))
	event.Props.SetText(config.PropTransp, config.ICalTransparent)

	// DTEND of an all-day event is exclusive.
	event.Props.Set(dateProp(config.PropDTStart, p.StartDate.In(loc)))
	event.Props.Set(dateProp(config.PropDTEnd, p.EndDate.In(loc).AddDate(0, 0, 1)))
	return event
}

func (g *Generator) summary(name string, kind cadence.DueKind) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(name, kind)
	}
	switch kind {
	case cadence.DueSnoozed:
		return fmt.Sprintf(config.FallbackSnoozed, name)
	case cadence.DuePlanned:
		return fmt.Sprintf(config.FallbackPlanNext, name)
	default:
		return fmt.Sprintf(config.FallbackReachOut, name)
	}
}

func (g *Generator) away(name string, label *string) string {
	if g.FormatAway != nil {
		return g.FormatAway(name, label)
	}
	if label != nil && *label != "" {
		return fmt.Sprintf(config.FallbackAway, name+" ("+*label+")")
	}
	return fmt.Sprintf(config.FallbackAway, name)
}

func dateProp(name string, t time.Time) *ical.Prop {
	prop := ical.NewProp(name)
	prop.SetDate(t)
	return prop
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
