package engine_test

import (
	"testing"
	"time"

	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ago(days int) *time.Time {
	t := now.AddDate(0, 0, -days)
	return &t
}

func ahead(days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func cadenceOf(days int) *int {
	return &days
}

func TestBuildDashboard(t *testing.T) {
	contacts := []engine.ContactEntry{
		{Name: "Amy", CadenceDays: cadenceOf(7), LastEventDate: ago(10)},
		{Name: "Bea", CadenceDays: cadenceOf(7), LastEventDate: ago(2)},
		{Name: "Cal", CadenceDays: cadenceOf(30)},
		{Name: "Dan", CadenceDays: cadenceOf(7), LastEventDate: ago(2), SnoozedUntil: ahead(1)},
		{
			Name:          "Eli",
			CadenceDays:   cadenceOf(7),
			LastEventDate: ago(20),
			OOOPeriods:    []cadence.OOOPeriod{{StartDate: *ago(1), EndDate: *ahead(3)}},
		},
		{Name: "Fay", CadenceDays: cadenceOf(7), LastEventDate: ago(20), NextEventDate: ahead(3)},
		{Name: "Gus"},
		{Name: "Zed", CadenceDays: cadenceOf(7), LastEventDate: ago(20)},
	}
	(&engine.Generator{}).Evaluate(contacts, now)

	d := engine.BuildDashboard(contacts, now)

	assert.Equal(t, engine.DashboardStats{
		TotalContacts:   8,
		OverdueContacts: 2,
		DueContacts:     2,
		AwayContacts:    1,
		PlannedContacts: 1,
	}, d.Stats)

	var names []string
	for _, c := range d.NeedsAttention {
		names = append(names, c.Name)
	}
	// Overdue first by days until due, then never seen, then soonest due.
	assert.Equal(t, []string{"Zed", "Amy", "Cal", "Bea"}, names)
}

func TestBuildDashboard_SnoozedOverdueIsNotCounted(t *testing.T) {
	contacts := []engine.ContactEntry{
		{Name: "Ivy", CadenceDays: cadenceOf(7), LastEventDate: ago(20), SnoozedUntil: ahead(3)},
		{Name: "Jon", CadenceDays: cadenceOf(7), LastEventDate: ago(20), SnoozedUntil: ago(1)},
	}
	(&engine.Generator{}).Evaluate(contacts, now)

	d := engine.BuildDashboard(contacts, now)

	assert.Equal(t, engine.DashboardStats{TotalContacts: 2, OverdueContacts: 1}, d.Stats, "Only the expired snooze counts")
	require.Len(t, d.NeedsAttention, 1)
	assert.Equal(t, "Jon", d.NeedsAttention[0].Name)
}

func TestBuildDashboard_Empty(t *testing.T) {
	d := engine.BuildDashboard(nil, now)

	assert.Zero(t, d.Stats)
	assert.NotNil(t, d.NeedsAttention, "An empty list encodes as [] rather than null")
	assert.Empty(t, d.NeedsAttention)
}
