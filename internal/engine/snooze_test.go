package engine_test

import (
	"testing"
	"time"

	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectForSnooze(t *testing.T) {
	lateOnEndDay := time.Date(2025, 6, 13, 23, 0, 0, 0, time.UTC)

	contacts := []engine.ContactEntry{
		{UID: "a", Name: "In range", CadenceDays: cadenceOf(7), LastEventDate: ago(5)},
		{UID: "b", Name: "After range", CadenceDays: cadenceOf(7), LastEventDate: ago(1)},
		{UID: "c", Name: "Already snoozed", CadenceDays: cadenceOf(7), LastEventDate: ago(5), SnoozedUntil: ahead(3)},
		{UID: "d", Name: "No cadence", LastEventDate: ago(5)},
		{UID: "e", Name: "Never seen", CadenceDays: cadenceOf(30)},
		{UID: "f", Name: "Planned", CadenceDays: cadenceOf(3), NextEventDate: ahead(2)},
		{UID: "g", Name: "End day", CadenceDays: cadenceOf(7), LastEventDate: &lateOnEndDay},
		{UID: "h", Name: "Planned event passed", CadenceDays: cadenceOf(7), LastEventDate: ago(30), NextEventDate: ago(3)},
	}

	plan, err := engine.SelectForSnooze(contacts, now,
		time.Date(2025, 6, 16, 15, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		7)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), plan.RangeStart)
	assert.Equal(t, time.Date(2025, 6, 20, 23, 59, 59, int(999*time.Millisecond), time.UTC), plan.RangeEnd)
	assert.Equal(t, now.Add(7*24*time.Hour), plan.SnoozedUntil)

	require.Len(t, plan.Contacts, 4)
	assert.Equal(t, "a", plan.Contacts[0].UID)
	assert.Equal(t, cadence.DueCadence, plan.Contacts[0].Kind)
	assert.Equal(t, "f", plan.Contacts[1].UID)
	assert.Equal(t, cadence.DuePlanned, plan.Contacts[1].Kind)
	assert.Equal(t, "g", plan.Contacts[2].UID)
	assert.Equal(t, time.Date(2025, 6, 20, 23, 0, 0, 0, time.UTC), plan.Contacts[2].DueDate)
	assert.Equal(t, "h", plan.Contacts[3].UID)
	assert.Equal(t, cadence.DueCadence, plan.Contacts[3].Kind, "A past planned event counts as the last event")
	assert.Equal(t, *ahead(4), plan.Contacts[3].DueDate)
	assert.Equal(t, ago(3), contacts[7].NextEventDate, "The caller's entries are left untouched")
}

func TestSelectForSnooze_NothingInRange(t *testing.T) {
	plan, err := engine.SelectForSnooze(nil, now, now, now, 1)
	require.NoError(t, err)
	assert.NotNil(t, plan.Contacts)
	assert.Empty(t, plan.Contacts)
}

func TestSelectForSnooze_Errors(t *testing.T) {
	_, err := engine.SelectForSnooze(nil, now, now, now, 0)
	assert.EqualError(t, err, config.ErrSnoozeDays)

	_, err = engine.SelectForSnooze(nil, now, now, now.AddDate(0, 0, -1), 3)
	assert.EqualError(t, err, config.ErrSnoozeRange)
}
