package engine

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	Mode            string // config.SourceModeLocal, SourceModeWeb or SourceModeCardDAV
	LocalPath       string // Absolute path to the .vcf file
	WebURL          string // vCard export URL or CardDAV address book URL
	WebUser         string // HTTP Basic Auth Username
	WebPass         string // HTTP Basic Auth Password
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")
}

// Generator turns an address book into contact statuses and a reminder feed.
type Generator struct {
	Clock   cadence.Clock
	Fetcher ContactFetcher // used in web mode
	CardDAV ContactFetcher // used in carddav mode

	// Formatters let the caller inject localized strings. Nil formatters
	// fall back to the English defaults.
	FormatSummary func(name string, kind cadence.DueKind) string
	FormatAway    func(name string, label *string) string
	FormatStatus  func(cadence.ContactStatus) string
}

// RunSync executes the fetching, parsing, and generation pipeline.
// It returns the ICS data, the contacts sorted by name, the number of
// contacts needing attention, and any error.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []ContactEntry, int, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, 0, ctx.Err()
		}
		return nil, nil, 0, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	contacts, total, err := readContacts(ctx, reader)
	if err != nil {
		return nil, nil, 0, err
	}

	now := g.Clock.Now()
	attention := g.Evaluate(contacts, now)

	ics, err := g.BuildCalendar(contacts, now, cfg.ReminderTrigger)
	if err != nil {
		return nil, nil, 0, err
	}

	log.Info(config.MsgGenSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, total),
			slog.Int(config.LogKeyTracked, len(contacts)),
			slog.Int(config.LogKeyAttention, attention),
		),
	)
	log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	return ics, contacts, attention, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb, config.SourceModeCardDAV:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		fetcher := g.Fetcher
		if cfg.Mode == config.SourceModeCardDAV {
			fetcher = g.CardDAV
		}
		if fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// readContacts decodes every card of the stream, sorted by name then UID.
// Malformed cards are skipped. The second result counts decoded cards.
func readContacts(ctx context.Context, r io.Reader) ([]ContactEntry, int, error) {
	decoder := vcard.NewDecoder(r)
	var contacts []ContactEntry
	total := 0

	for {
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		total++
		contacts = append(contacts, contactFromCard(card))
	}

	slices.SortStableFunc(contacts, func(a, b ContactEntry) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.UID, b.UID)
	})
	return contacts, total, nil
}

// Evaluate derives the status of every contact at instant now and returns
// how many of them need attention.
func (g *Generator) Evaluate(contacts []ContactEntry, now time.Time) int {
	formatStatus := g.FormatStatus
	if formatStatus == nil {
		formatStatus = cadence.StatusText
	}

	attention := 0
	for i := range contacts {
		c := &contacts[i]
		c.evaluate(now, formatStatus)
		if c.NeedsAttention(now) {
			attention++
			slog.Debug(config.MsgContactDue,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, c.Name,
				config.LogKeyValue, c.StatusText)
		}
	}
	return attention
}
