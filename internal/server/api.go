package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/redoswald/all-friends/internal/cadence"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/redoswald/all-friends/internal/i18n"
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newErrorResponse(code, message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: message}}
}

type contactsResponse struct {
	Lang        string                `json:"lang"`
	EvaluatedAt time.Time             `json:"evaluatedAt"`
	Contacts    []engine.ContactEntry `json:"contacts"`
}

type dashboardResponse struct {
	Lang        string    `json:"lang"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
	engine.Dashboard
}

type healthResponse struct {
	Status   string `json:"status"`
	Ready    bool   `json:"ready"`
	Contacts int    `json:"contacts"`
}

func (s *ReminderServer) handleContacts(w http.ResponseWriter, r *http.Request) {
	item := s.cache.Load()
	if item == nil {
		writeNotReady(w)
		return
	}

	loc := s.localizer(r)
	writeJSON(w, http.StatusOK, contactsResponse{
		Lang:        lang(loc),
		EvaluatedAt: item.evaluatedAt,
		Contacts:    localize(item.contacts, loc),
	})
}

func (s *ReminderServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	item := s.cache.Load()
	if item == nil {
		writeNotReady(w)
		return
	}

	loc := s.localizer(r)
	d := item.dashboard
	d.NeedsAttention = localize(d.NeedsAttention, loc)

	writeJSON(w, http.StatusOK, dashboardResponse{
		Lang:        lang(loc),
		EvaluatedAt: item.evaluatedAt,
		Dashboard:   d,
	})
}

func (s *ReminderServer) handleCadenceOptions(w http.ResponseWriter, r *http.Request) {
	loc := s.localizer(r)
	opts := cadence.CadenceOptions()
	if loc != nil {
		opts = loc.CadenceOptions()
	}
	writeJSON(w, http.StatusOK, opts)
}

func (s *ReminderServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: config.HTTPStatusOK}
	if item := s.cache.Load(); item != nil {
		resp.Ready = true
		resp.Contacts = len(item.contacts)
	}
	writeJSON(w, http.StatusOK, resp)
}

// localizer picks the language from the lang query parameter, then the
// Accept-Language header.
func (s *ReminderServer) localizer(r *http.Request) *i18n.Localizer {
	if s.Translator == nil {
		return nil
	}
	lang := s.Translator.Match(r.URL.Query().Get(config.QueryLang), r.Header.Get(config.HeaderAcceptLanguage))
	return s.Translator.Localizer(lang)
}

// localize re-renders the texts of a copy of contacts.
func localize(contacts []engine.ContactEntry, loc *i18n.Localizer) []engine.ContactEntry {
	out := slices.Clone(contacts)
	if out == nil {
		out = []engine.ContactEntry{}
	}
	if loc == nil {
		return out
	}
	for i := range out {
		out[i].StatusText = loc.StatusText(out[i].Status)
		out[i].AnnualFrequency = loc.AnnualFrequency(out[i].CadenceDays)
	}
	return out
}

func lang(loc *i18n.Localizer) string {
	if loc == nil {
		return config.DefaultLanguage
	}
	return loc.Lang()
}

func writeNotReady(w http.ResponseWriter) {
	w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
	writeJSON(w, http.StatusServiceUnavailable, newErrorResponse(config.HTTPCodeNotReady, config.HTTPMsgInitializing))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error(config.ErrEncodeJSON,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(newErrorResponse(config.HTTPCodeInternal, config.HTTPMsgInternalErr))
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
