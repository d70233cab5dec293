package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
)

// uidNamespace seeds the name-based UUIDs of cards without a UID.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// contactFromCard maps a vCard onto a ContactEntry.
// Invalid facts are logged and dropped; the contact itself is always kept.
func contactFromCard(card vcard.Card) ContactEntry {
	// Name Strategy: FN (Formatted) > N (Structured) > Fallback
	name := config.FallbackName
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		name = fn.Value
	} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		name = n.Value
	}

	entry := ContactEntry{
		UID:  contactUID(card, name),
		Name: name,
	}

	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyName, name,
	)
	skip := func(prop, value string, err error) {
		log.Debug(config.MsgSkippedFact,
			config.LogKeyProperty, prop,
			config.LogKeyValue, value,
			config.LogKeyError, err)
	}

	if f := card.Get(config.VCardCadence); f != nil {
		if days, err := parseCadence(f.Value); err == nil {
			entry.CadenceDays = &days
		} else {
			skip(config.VCardCadence, f.Value, err)
		}
	}

	for prop, dst := range map[string]**time.Time{
		config.VCardLastEvent:    &entry.LastEventDate,
		config.VCardNextEvent:    &entry.NextEventDate,
		config.VCardSnoozedUntil: &entry.SnoozedUntil,
	} {
		f := card.Get(prop)
		if f == nil {
			continue
		}
		t, err := parseDate(f.Value)
		if err != nil {
			skip(prop, f.Value, err)
			continue
		}
		*dst = &t
	}

	for _, f := range card[config.VCardOOO] {
		p, err := parseOOO(f)
		if err != nil {
			skip(config.VCardOOO, f.Value, err)
			continue
		}
		entry.OOOPeriods = append(entry.OOOPeriods, p)
	}

	return entry
}

// contactUID prefers the card's own UID so feed events survive renames.
func contactUID(card vcard.Card, name string) string {
	if uid := strings.TrimSpace(card.Value(config.VCardUID)); uid != "" {
		return uid
	}
	seed := fmt.Sprintf(config.FormatUIDSeed, name, card.Value(config.VCardN))
	return uuid.NewSHA1(uidNamespace, []byte(seed)).String()
}

func parseCadence(value string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || days <= 0 {
		return 0, errors.New(config.ErrCadenceParse)
	}
	return days, nil
}

// parseOOO reads a "start/end" range with an optional LABEL parameter.
func parseOOO(f *vcard.Field) (cadence.OOOPeriod, error) {
	startRaw, endRaw, ok := strings.Cut(f.Value, config.OOORangeSeparator)
	if !ok {
		return cadence.OOOPeriod{}, errors.New(config.ErrOOOParse)
	}

	start, err := parseDate(startRaw)
	if err != nil {
		return cadence.OOOPeriod{}, err
	}
	end, err := parseDate(endRaw)
	if err != nil {
		return cadence.OOOPeriod{}, err
	}

	p := cadence.OOOPeriod{StartDate: start, EndDate: end}
	if label := f.Params.Get(config.VCardParamLabel); label != "" {
		p.Label = &label
	}
	return p, nil
}

// parseDate handles the date formats found in vCard files.
// Date-only values are anchored at midday UTC so that they keep the same
// calendar day in every timezone a client may render them in.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, f := range []string{config.DateFormatRFC3339, config.DateFormatFullT} {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}

	for _, f := range []string{config.DateFormatFullDash, config.DateFormatFullBasic} {
		if t, err := time.Parse(f, value); err == nil {
			return t.Add(config.DateOnlyHourUTC * time.Hour), nil
		}
	}

	return time.Time{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}
