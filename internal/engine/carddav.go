package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/emersion/go-vcard"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/carddav"
	"github.com/redoswald/all-friends/internal/config"
)

// CardDAVFetcher queries a CardDAV address book and re-encodes the returned
// cards as one vCard stream, so the rest of the pipeline does not care where
// the contacts came from.
type CardDAVFetcher struct {
	Client *http.Client
}

// NewCardDAVFetcher creates a CardDAVFetcher with configured timeouts.
func NewCardDAVFetcher() *CardDAVFetcher {
	return &CardDAVFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch runs an addressbook-query REPORT on the address book at targetURL.
func (f *CardDAVFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, safeURL, err := parseSourceURL(targetURL)
	if err != nil {
		return nil, err
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompCardDAV),
		slog.String(config.LogKeyURL, safeURL),
	)

	var httpClient webdav.HTTPClient = f.Client
	if user != "" || pass != "" {
		httpClient = webdav.HTTPClientWithBasicAuth(f.Client, user, pass)
	}

	client, err := carddav.NewClient(httpClient, targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCardDAVClient, err)
	}

	query := &carddav.AddressBookQuery{
		DataRequest: carddav.AddressDataRequest{AllProp: true},
	}
	objects, err := client.QueryAddressBook(ctx, u.Path, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCardDAVQuery, err)
	}

	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)
	for _, obj := range objects {
		if err := enc.Encode(obj.Card); err != nil {
			log.Warn(config.MsgSkippedCard,
				config.LogKeyURL, obj.Path,
				config.LogKeyError, fmt.Errorf("%s: %w", config.ErrVCardEncode, err))
		}
	}

	log.Info("Address book queried",
		slog.Int(config.LogKeyCount, len(objects)),
		slog.Int(config.LogKeySizeBytes, buf.Len()),
	)
	return io.NopCloser(&buf), nil
}
