package i18n_test

import (
	"testing"

	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.New()
	require.NoError(t, err)
	return tr
}

func days(n int) *int {
	return &n
}

func TestNew_Languages(t *testing.T) {
	tr := newTranslator(t)
	assert.Equal(t, config.SupportedLanguages, tr.Languages(), "Default language comes first")
}

func TestMatch(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"No preference", nil, "en"},
		{"Empty header", []string{""}, "en"},
		{"Exact code", []string{"fr"}, "fr"},
		{"Regional variant", []string{"fr-CA"}, "fr"},
		{"Accept-Language with weights", []string{"de-DE,fr;q=0.8,en;q=0.5"}, "fr"},
		{"Unsupported language", []string{"ja"}, "en"},
		{"First preference wins", []string{"en", "fr"}, "en"},
		{"Garbage is ignored", []string{"%%%", "fr"}, "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.prefs...))
		})
	}
}

func TestLocalizer_UnknownLanguageFallsBack(t *testing.T) {
	l := newTranslator(t).Localizer("xx")
	assert.Equal(t, config.DefaultLanguage, l.Lang())
	assert.Equal(t, "Never seen", l.Msg(config.TKeyNeverSeen))
}

func TestLocalizer_MissingKey(t *testing.T) {
	l := newTranslator(t).Localizer("en")
	assert.Equal(t, "no_such_key", l.Msg("no_such_key"))

	var nilLocalizer *i18n.Localizer
	assert.Equal(t, config.TKeyNeverSeen, nilLocalizer.Msg(config.TKeyNeverSeen))
}

// TestStatusText_MatchesEnglishRenderer keeps the English locale in sync with
// cadence.StatusText.
func TestStatusText_MatchesEnglishRenderer(t *testing.T) {
	l := newTranslator(t).Localizer("en")

	statuses := []cadence.ContactStatus{
		{IsAway: true, DaysUntilBack: days(0)},
		{IsAway: true, DaysUntilBack: days(1)},
		{IsAway: true, DaysUntilBack: days(9)},
		{HasUpcomingEvent: true, DaysUntilNextEvent: days(0)},
		{HasUpcomingEvent: true, DaysUntilNextEvent: days(1)},
		{HasUpcomingEvent: true, DaysUntilNextEvent: days(-1)},
		{HasUpcomingEvent: true, DaysUntilNextEvent: days(12)},
		{},
		{HasCadence: true, IsDue: true},
		{HasCadence: true, IsOverdue: true, DaysUntilDue: days(0)},
		{HasCadence: true, IsOverdue: true, DaysUntilDue: days(-1)},
		{HasCadence: true, IsOverdue: true, DaysUntilDue: days(-30)},
		{HasCadence: true, IsDue: true, DaysUntilDue: days(1)},
		{HasCadence: true, IsDue: true, DaysUntilDue: days(6)},
		{HasCadence: true, DaysUntilDue: days(-1)},
		{HasCadence: true, DaysUntilDue: days(20)},
	}

	for _, s := range statuses {
		assert.Equal(t, cadence.StatusText(s), l.StatusText(s))
	}
}

func TestStatusText_French(t *testing.T) {
	l := newTranslator(t).Localizer("fr")

	assert.Equal(t, "De retour demain", l.StatusText(cadence.ContactStatus{IsAway: true, DaysUntilBack: days(1)}))
	assert.Equal(t, "1 jour de retard",
		l.StatusText(cadence.ContactStatus{HasCadence: true, IsOverdue: true, DaysUntilDue: days(-1)}))
	assert.Equal(t, "12 jours de retard",
		l.StatusText(cadence.ContactStatus{HasCadence: true, IsOverdue: true, DaysUntilDue: days(-12)}))
	assert.Equal(t, "Prévu dans 3 jours",
		l.StatusText(cadence.ContactStatus{HasUpcomingEvent: true, DaysUntilNextEvent: days(3)}))
}

func TestAnnualFrequency(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, cadence.AnnualFrequencyText(days(30)), tr.Localizer("en").AnnualFrequency(days(30)))
	assert.Equal(t, "~52 fois par an", tr.Localizer("fr").AnnualFrequency(days(7)))
	assert.Empty(t, tr.Localizer("fr").AnnualFrequency(nil))
}

func TestSummaries(t *testing.T) {
	en := newTranslator(t).Localizer("en")

	assert.Equal(t, "Reach out: Alice", en.Summary("Alice", cadence.DueCadence))
	assert.Equal(t, "Reach out: Alice", en.Summary("Alice", cadence.DueNever))
	assert.Equal(t, "Plan next: Alice", en.Summary("Alice", cadence.DuePlanned))
	assert.Equal(t, "Snoozed: Alice", en.Summary("Alice", cadence.DueSnoozed))

	label := "Japan trip"
	assert.Equal(t, "Away: Bob (Japan trip)", en.Away("Bob", &label))
	assert.Equal(t, "Away: Bob", en.Away("Bob", nil))
}

func TestCadenceOptions(t *testing.T) {
	tr := newTranslator(t)

	en := tr.Localizer("en").CadenceOptions()
	assert.Equal(t, cadence.CadenceOptions(), en, "English labels match the built-in ones")

	fr := tr.Localizer("fr").CadenceOptions()
	require.Len(t, fr, len(en))
	assert.Equal(t, "Hebdomadaire", fr[0].Label)
	assert.Equal(t, en[0].Days, fr[0].Days)
	assert.True(t, fr[4].Custom)
}
