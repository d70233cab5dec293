// Package app runs the synchronization loop that keeps the reminder feed
// up to date.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/redoswald/all-friends/internal/i18n"
	"github.com/zalando/go-keyring"
)

// Publisher receives every successful synchronization.
type Publisher interface {
	Update(data []byte, contacts []engine.ContactEntry, evaluatedAt time.Time)
}

// Controller owns the sync loop and the latest contact list.
type Controller struct {
	Settings   config.Settings
	Clock      cadence.Clock
	Fetcher    engine.ContactFetcher
	CardDAV    engine.ContactFetcher
	Translator *i18n.Translator
	Publisher  Publisher

	refresh chan struct{}

	mu       sync.RWMutex
	contacts []engine.ContactEntry
	lastSync time.Time
}

// NewController wires a controller with the network fetchers.
// pub may be nil for one-shot commands.
func NewController(settings config.Settings, clock cadence.Clock, tr *i18n.Translator, pub Publisher) *Controller {
	return &Controller{
		Settings:   settings,
		Clock:      clock,
		Fetcher:    engine.NewHTTPFetcher(),
		CardDAV:    engine.NewCardDAVFetcher(),
		Translator: tr,
		Publisher:  pub,
		refresh:    make(chan struct{}, config.ChannelBufferSize),
	}
}

// Run syncs once, then on every tick and every Refresh, until ctx is done.
func (c *Controller) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	_, _ = c.Sync(ctx, false)

	interval := c.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-c.refresh:
			_, _ = c.Sync(ctx, true)

		case <-ticker.C:
			_, _ = c.Sync(ctx, false)
		}
	}
}

// Refresh asks Run for a sync. Requests made while one is pending are merged.
func (c *Controller) Refresh() {
	select {
	case c.refresh <- struct{}{}:
	default:
	}
}

// Sync runs one synchronization and publishes its result.
func (c *Controller) Sync(ctx context.Context, manual bool) ([]engine.ContactEntry, error) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompApp,
		config.LogKeyManual, manual)

	// One instant for the feed, the statuses and the dashboard.
	evaluatedAt := c.Clock.Now()
	gen := c.generator(cadence.FixedClock(evaluatedAt))

	icsData, contacts, attention, err := gen.RunSync(ctx, c.SyncConfig())
	if err != nil {
		slog.Error(config.MsgSyncFailed,
			config.LogKeyComponent, config.CompApp,
			config.LogKeyError, err)
		return nil, err
	}

	c.mu.Lock()
	c.contacts = contacts
	c.lastSync = evaluatedAt
	c.mu.Unlock()

	if c.Publisher != nil {
		c.Publisher.Update(icsData, contacts, evaluatedAt)
	}

	slog.Info(config.MsgSyncDone,
		config.LogKeyComponent, config.CompApp,
		config.LogKeyAttention, attention)
	return contacts, nil
}

// Contacts returns the result of the last successful sync.
func (c *Controller) Contacts() ([]engine.ContactEntry, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.contacts), c.lastSync
}

// SyncConfig builds the engine configuration from the settings. When no
// password is configured, it is looked up in the system keyring.
func (c *Controller) SyncConfig() engine.SyncConfig {
	s := c.Settings
	cfg := engine.SyncConfig{
		Mode:      s.SourceMode,
		LocalPath: s.LocalPath,
		WebURL:    s.WebURL,
		WebUser:   s.WebUser,
		WebPass:   s.WebPass,
	}

	if cfg.WebPass == "" && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompApp)
		}
	}

	if s.ReminderEnabled {
		cfg.ReminderTrigger = ReminderTrigger(s.ReminderValue, s.ReminderUnit, s.ReminderDirection)
	}
	return cfg
}

// ReminderTrigger formats a VALARM trigger as an ISO 8601 duration.
// Hours and minutes need the time designator: "-PT2H", not "-P2H".
func ReminderTrigger(value int, unit, direction string) string {
	sign := config.ISOPeriodPrefix
	if direction == config.DirBefore {
		sign = config.ISONegativePrefix
	}

	switch unit {
	case config.UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimePrefix, value, config.ISOHour)
	case config.UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTimePrefix, value, config.ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, value, config.ISODay)
	}
}

func (c *Controller) generator(clock cadence.Clock) *engine.Generator {
	gen := &engine.Generator{
		Clock:   clock,
		Fetcher: c.Fetcher,
		CardDAV: c.CardDAV,
	}
	if c.Translator != nil {
		loc := c.Translator.Localizer(c.Settings.Language)
		gen.FormatSummary = loc.Summary
		gen.FormatAway = loc.Away
		gen.FormatStatus = loc.StatusText
	}
	return gen
}

func (c *Controller) interval() time.Duration {
	minutes := c.Settings.RefreshMinutes
	if minutes <= 0 {
		minutes = config.DefaultRefreshMin
	}
	return time.Duration(minutes) * time.Minute
}
