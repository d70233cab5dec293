package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/redoswald/all-friends/internal/i18n"
)

// cacheItem is one synchronization result, rendered for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers

	contacts    []engine.ContactEntry
	dashboard   engine.Dashboard
	evaluatedAt time.Time
}

// ReminderServer serves the reminder feed and the read-only contact API.
type ReminderServer struct {
	// cache uses atomic.Pointer for lock-free reads: it is read on every
	// request and only replaced after a sync.
	cache atomic.Pointer[cacheItem]
	Port  string

	// Translator localizes the API responses. Nil serves the texts computed
	// at sync time.
	Translator *i18n.Translator
}

// NewReminderServer creates a new instance of the server.
func NewReminderServer(port string, tr *i18n.Translator) *ReminderServer {
	return &ReminderServer{
		Port:       port,
		Translator: tr,
	}
}

// Handler returns the router serving every route of the server.
func (s *ReminderServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(readOnly)

	r.HandleFunc(config.RouteRoot, s.handleCalendarRequest)
	r.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	r.HandleFunc(config.RouteContacts, s.handleContacts)
	r.HandleFunc(config.RouteDashboard, s.handleDashboard)
	r.HandleFunc(config.RouteCadenceOptions, s.handleCadenceOptions)
	r.HandleFunc(config.RouteHealth, s.handleHealth)
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *ReminderServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed and contacts. evaluatedAt is
// the instant the statuses were computed at.
func (s *ReminderServer) Update(data []byte, contacts []engine.ContactEntry, evaluatedAt time.Time) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
		contacts:     contacts,
		dashboard:    engine.BuildDashboard(contacts, evaluatedAt),
		evaluatedAt:  evaluatedAt,
	}

	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyCount, len(contacts),
		config.LogKeyETag, etag,
	)
}

// readOnly rejects every method but GET and HEAD.
func readOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *ReminderServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	item := s.cache.Load()

	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
