package engine_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emersion/go-vcard"
	"github.com/redoswald/all-friends/internal/config"
	"github.com/redoswald/all-friends/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addressBookReport = `<?xml version="1.0" encoding="utf-8"?>
<d:multistatus xmlns:d="DAV:" xmlns:card="urn:ietf:params:xml:ns:carddav">
  <d:response>
    <d:href>/books/friends/alice.vcf</d:href>
    <d:propstat>
      <d:prop>
        <d:getetag>"a1"</d:getetag>
        <card:address-data>BEGIN:VCARD
VERSION:3.0
UID:alice-1
FN:Alice
X-CADENCE-DAYS:7
END:VCARD
</card:address-data>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
  <d:response>
    <d:href>/books/friends/bob.vcf</d:href>
    <d:propstat>
      <d:prop>
        <d:getetag>"b1"</d:getetag>
        <card:address-data>BEGIN:VCARD
VERSION:3.0
UID:bob-1
FN:Bob
END:VCARD
</card:address-data>
      </d:prop>
      <d:status>HTTP/1.1 200 OK</d:status>
    </d:propstat>
  </d:response>
</d:multistatus>`

func TestCardDAVFetcher_Fetch_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "REPORT", r.Method)
		assert.Equal(t, "/books/friends/", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "Basic auth header should be present")
		assert.Equal(t, "me", user)
		assert.Equal(t, "secret", pass)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "addressbook-query")

		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.WriteHeader(http.StatusMultiStatus)
		_, _ = w.Write([]byte(addressBookReport))
	}))
	defer ts.Close()

	fetcher := engine.NewCardDAVFetcher()
	rc, err := fetcher.Fetch(context.Background(), ts.URL+"/books/friends/", "me", "secret")
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	dec := vcard.NewDecoder(rc)
	var names []string
	for {
		c, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		names = append(names, c.Value(vcard.FieldFormattedName))
	}
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}

func TestCardDAVFetcher_Fetch_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	rc, err := engine.NewCardDAVFetcher().Fetch(context.Background(), ts.URL+"/books/", "", "")

	require.Error(t, err)
	assert.Nil(t, rc)
	assert.True(t, strings.HasPrefix(err.Error(), config.ErrCardDAVQuery))
}
