// Package i18n localizes status text, feed summaries and cadence labels.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator holds the translation bundle and the languages it can serve.
type Translator struct {
	bundle    *goi18n.Bundle
	languages []string
	matcher   language.Matcher
}

// New loads every embedded locale file. The default language is always
// listed first.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detectedLangs []string

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
		detectedLangs = append(detectedLangs, langCode)
	}

	if !slices.Contains(detectedLangs, config.DefaultLanguage) {
		return nil, errors.New(config.ErrLocNotInit)
	}

	slices.SortFunc(detectedLangs, func(a, b string) int {
		switch {
		case a == config.DefaultLanguage:
			return -1
		case b == config.DefaultLanguage:
			return 1
		}
		return strings.Compare(a, b)
	})

	tags := make([]language.Tag, len(detectedLangs))
	for i, l := range detectedLangs {
		tags[i] = language.Make(l)
	}

	return &Translator{
		bundle:    bundle,
		languages: detectedLangs,
		matcher:   language.NewMatcher(tags),
	}, nil
}

// Languages returns the loaded language codes, default first.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// Match returns the best loaded language for the given preferences. Each
// preference is a language code or a full Accept-Language header, most
// important first. Empty or unparsable preferences are ignored.
func (t *Translator) Match(prefs ...string) string {
	var tags []language.Tag
	for _, p := range prefs {
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return config.DefaultLanguage
	}

	_, idx, conf := t.matcher.Match(tags...)
	if conf == language.No {
		return config.DefaultLanguage
	}
	return t.languages[idx]
}

// Localizer returns the localizer for lang, falling back to the default
// language for unknown codes.
func (t *Translator) Localizer(lang string) *Localizer {
	if !slices.Contains(t.languages, lang) {
		lang = config.DefaultLanguage
	}
	return &Localizer{
		lang: lang,
		loc:  goi18n.NewLocalizer(t.bundle, lang),
	}
}

// Localizer renders messages in one language.
type Localizer struct {
	lang string
	loc  *goi18n.Localizer
}

// Lang returns the language code served by l.
func (l *Localizer) Lang() string {
	return l.lang
}

// Msg translates a plain key. Missing keys are returned as-is.
func (l *Localizer) Msg(key string) string {
	return l.localize(&goi18n.LocalizeConfig{MessageID: key})
}

// Count translates a plural key with a day or occurrence count.
func (l *Localizer) Count(key string, n int) string {
	return l.localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": n},
	})
}

func (l *Localizer) localize(lc *goi18n.LocalizeConfig) string {
	if l == nil || l.loc == nil {
		return lc.MessageID
	}
	msg, err := l.loc.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

var statusKeys = map[cadence.StatusKind]string{
	cadence.StatusBackToday:       config.TKeyBackToday,
	cadence.StatusBackTomorrow:    config.TKeyBackTomorrow,
	cadence.StatusAway:            config.TKeyAwayDays,
	cadence.StatusPlannedToday:    config.TKeyPlannedToday,
	cadence.StatusPlannedTomorrow: config.TKeyPlannedTomorrow,
	cadence.StatusPlanned:         config.TKeyPlannedDays,
	cadence.StatusNoCadence:       config.TKeyNoCadence,
	cadence.StatusNeverSeen:       config.TKeyNeverSeen,
	cadence.StatusOverdue:         config.TKeyOverdueDays,
	cadence.StatusDueIn:           config.TKeyDueInDays,
	cadence.StatusUntilDue:        config.TKeyUntilDueDays,
}

// countedStatus lists the status sentences that embed a day count. Their
// messages carry plural forms.
var countedStatus = []cadence.StatusKind{
	cadence.StatusAway,
	cadence.StatusPlanned,
	cadence.StatusOverdue,
	cadence.StatusDueIn,
	cadence.StatusUntilDue,
}

// StatusText is the localized counterpart of cadence.StatusText.
func (l *Localizer) StatusText(s cadence.ContactStatus) string {
	m := cadence.DescribeStatus(s)
	if slices.Contains(countedStatus, m.Kind) {
		return l.Count(statusKeys[m.Kind], m.Count)
	}
	return l.Msg(statusKeys[m.Kind])
}

// AnnualFrequency is the localized counterpart of cadence.AnnualFrequencyText.
func (l *Localizer) AnnualFrequency(cadenceDays *int) string {
	n, ok := cadence.AnnualFrequency(cadenceDays)
	if !ok {
		return ""
	}
	return l.Count(config.TKeyAnnualFrequency, n)
}

// Summary renders the feed event title of a due contact.
func (l *Localizer) Summary(name string, kind cadence.DueKind) string {
	key := config.TKeyEvtReachOut
	switch kind {
	case cadence.DueSnoozed:
		key = config.TKeyEvtSnoozed
	case cadence.DuePlanned:
		key = config.TKeyEvtPlanNext
	}
	return l.localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]any{"Name": name},
	})
}

// Away renders the feed event title of an OOO period.
func (l *Localizer) Away(name string, label *string) string {
	data := map[string]any{"Name": name, "Label": ""}
	if label != nil {
		data["Label"] = *label
	}
	return l.localize(&goi18n.LocalizeConfig{
		MessageID:    config.TKeyEvtAway,
		TemplateData: data,
	})
}

var cadenceKeys = []string{
	config.TKeyCadenceWeekly,
	config.TKeyCadenceBiweekly,
	config.TKeyCadenceMonthly,
	config.TKeyCadenceQuarterly,
	config.TKeyCadenceCustom,
	config.TKeyCadenceNone,
}

// CadenceOptions returns cadence.CadenceOptions with translated labels.
func (l *Localizer) CadenceOptions() []cadence.CadenceOption {
	opts := cadence.CadenceOptions()
	for i := range opts {
		if i < len(cadenceKeys) {
			opts[i].Label = l.Msg(cadenceKeys[i])
		}
	}
	return opts
}
