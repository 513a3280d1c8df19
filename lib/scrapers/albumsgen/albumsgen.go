package albumsgen

import (
	"context"
	"fmt"
	"time"

	"albumboard/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/albumsgen")

// AlbumRecord is one row of a group's "Rated Albums" table.
type AlbumRecord struct {
	Album       string    `json:"album"`
	Artist      string    `json:"artist"`
	Rating      float64   `json:"rating"`
	Votes       int       `json:"votes"`
	Date        time.Time `json:"date"` // zero when the date could not be parsed
	SpotifyURL  string    `json:"spotify_url"`
	DetailsURL  string    `json:"details_url"`
	Controversy float64   `json:"controversy"`
}

// HasDate reports whether the row's date survived parsing.
func (r AlbumRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// Warning is a non-fatal failure while extracting one table row.
// Dropped rows are excluded from the result, the rest of the batch is
// unaffected either way.
type Warning struct {
	Row     int
	Dropped bool
	Err     error
}

func (w Warning) String() string {
	if w.Dropped {
		return fmt.Sprintf("row %d dropped: %s", w.Row, w.Err)
	}
	return fmt.Sprintf("row %d: %s", w.Row, w.Err)
}

// FetchError is a network or HTTP-status failure while fetching a
// group page. It aborts the whole scrape, no partial results.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StructureError means a required page landmark is gone: either the
// URL does not point at a group page or the site's markup changed.
type StructureError struct {
	Landmark string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("could not find %s on page", e.Landmark)
}

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	telemetry.InstrumentResty(client, "scrapers/albumsgen/http")

	return &Client{http: client}
}

// FetchGroupPage performs a single GET against the group page. No
// retries, no auth.
func (c *Client) FetchGroupPage(ctx context.Context, pageURL string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "FetchGroupPage")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	if res.IsError() {
		return nil, &FetchError{URL: pageURL, StatusCode: res.StatusCode()}
	}
	return res.Body(), nil
}

// ScrapeGroup fetches a group page and extracts its rated albums in
// table order.
func (c *Client) ScrapeGroup(ctx context.Context, pageURL string) ([]AlbumRecord, []Warning, error) {
	ctx, span := tracer.Start(ctx, "ScrapeGroup")
	defer span.End()

	page, err := c.FetchGroupPage(ctx, pageURL)
	if err != nil {
		return nil, nil, err
	}
	return ExtractAlbums(ctx, page, pageURL)
}
