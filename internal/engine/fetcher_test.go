package engine_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs routes the default logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestHTTPFetcher_Fetch_Success(t *testing.T) {
	const vcf = "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nX-CADENCE-DAYS:14\nEND:VCARD"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "me", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, config.UserAgent, r.Header.Get(config.HeaderUserAgent))
		_, _ = w.Write([]byte(vcf))
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "me", "secret")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, vcf, string(body))
}

func TestHTTPFetcher_Fetch_AnonymousSendsNoAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	_ = rc.Close()
}

func TestHTTPFetcher_Fetch_QueryIsSentButNotLogged(t *testing.T) {
	logs := captureLogs(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/export/contacts.vcf", r.URL.Path)
		assert.Equal(t, "s3cr3t-token", r.URL.Query().Get("token"))
		_, _ = w.Write([]byte("BEGIN:VCARD\nEND:VCARD"))
	}))
	defer ts.Close()

	rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL+"/export/contacts.vcf?token=s3cr3t-token", "", "")
	require.NoError(t, err)
	_ = rc.Close()

	out := logs.String()
	assert.Contains(t, out, ts.URL+"/export/contacts.vcf")
	assert.NotContains(t, out, "s3cr3t-token")
}

func TestHTTPFetcher_Fetch_BodyIsCapped(t *testing.T) {
	const limit = 64
	payload := strings.Repeat("x", limit*4)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer ts.Close()

	fetcher := engine.NewHTTPFetcher()
	fetcher.MaxBytes = limit

	rc, err := fetcher.Fetch(context.Background(), ts.URL, "", "")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Len(t, body, limit)
}

func TestHTTPFetcher_Fetch_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    string
	}{
		{"Not found", http.StatusNotFound, "404"},
		{"Server error", http.StatusInternalServerError, "500"},
		{"Unauthorized", http.StatusUnauthorized, "401"},
		{"No content", http.StatusNoContent, "204"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer ts.Close()

			rc, err := engine.NewHTTPFetcher().Fetch(context.Background(), ts.URL, "", "")
			require.Error(t, err)
			assert.Nil(t, rc)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPFetcher_Fetch_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := engine.NewHTTPFetcher().Fetch(ctx, ts.URL, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// Both remote sources share the same URL checks.
func TestFetchers_RejectUnsafeSources(t *testing.T) {
	fetchers := map[string]engine.ContactFetcher{
		"http":    engine.NewHTTPFetcher(),
		"carddav": engine.NewCardDAVFetcher(),
	}
	sources := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"Control character", string([]byte{0x7f}), config.ErrInvalidURL},
		{"FTP", "ftp://example.com/contacts.vcf", config.ErrProtocol},
		{"Local file", "file:///etc/passwd", config.ErrProtocol},
		{"Missing scheme", "example.com/contacts.vcf", config.ErrProtocol},
	}

	for kind, f := range fetchers {
		for _, src := range sources {
			t.Run(kind+"/"+src.name, func(t *testing.T) {
				rc, err := f.Fetch(context.Background(), src.url, "", "")
				require.Error(t, err)
				assert.Nil(t, rc)
				assert.Contains(t, err.Error(), src.wantErr)
			})
		}
	}
}
