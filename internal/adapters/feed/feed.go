// Package feed fetches and parses the published spreadsheet CSV.
package feed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pizzapunten/pizzapunten/internal/domain/record"
	"github.com/pizzapunten/pizzapunten/pkg/logger"
	"github.com/pizzapunten/pizzapunten/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultMaxRetries     = 3
	defaultRequestTimeout = 15 * time.Second

	// cacheBusterParam defeats intermediary caches between us and the
	// published sheet.
	cacheBusterParam = "t"
)

// Client fetches the raw CSV feed over HTTP.
type Client struct {
	feedURL    string
	httpClient *http.Client
	maxRetries uint64
	logger     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Client) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithMaxRetries bounds the number of retries after transient errors.
func WithMaxRetries(n int) Option {
	return func(f *Client) {
		if n >= 0 {
			f.maxRetries = uint64(n)
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(f *Client) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewClient creates a feed client for the given URL.
func NewClient(feedURL string, opts ...Option) *Client {
	c := &Client{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		maxRetries: defaultMaxRetries,
		logger:     nil, // resolved lazily so tests can construct clients before logger.Init
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) log() logger.Logger {
	if c.logger == nil {
		c.logger = logger.Get().Named("feed")
	}
	return c.logger
}

// Fetch retrieves the raw CSV text. A timestamp query parameter is
// appended so intermediary caches cannot serve stale content.
// Transient transport errors are retried with exponential backoff; a
// non-2xx response fails immediately with the status code recorded.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	reqURL, err := c.bustedURL()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	start := time.Now()
	defer func() {
		metrics.RecordFetchLatency(float64(time.Since(start).Milliseconds()))
	}()

	var body string
	attempt := 0
	operation := func() error {
		if attempt > 0 {
			metrics.RecordFetchRetry()
			c.log().Warn(ctx, "retrying feed fetch", logger.Int("attempt", attempt))
		}
		attempt++

		text, err := c.fetchOnce(ctx, reqURL)
		if err != nil {
			if errors.Is(err, ErrStatus) {
				// The status code is authoritative; do not retry.
				return backoff.Permanent(err)
			}
			return err
		}
		body = text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return body, nil
}

// bustedURL appends the cache-defeating timestamp parameter.
func (c *Client) bustedURL() (string, error) {
	u, err := url.Parse(c.feedURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(cacheBusterParam, strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetchOnce(ctx context.Context, reqURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return string(body), nil
}

// Parse runs the CSV text through a header-aware parser and returns the
// raw rows. Malformed rows are logged and skipped; they never fail the
// cycle. Header cells are trimmed and a single trailing comma artifact
// is stripped, matching what the sheet export produces.
func (c *Client) Parse(ctx context.Context, text string) []record.RawRow {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			c.log().Warn(ctx, "feed has no readable header", logger.Error(err))
			metrics.RecordParseWarning()
		}
		return nil
	}
	for i, h := range header {
		header[i] = normalizeHeader(h)
	}

	var rows []record.RawRow
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			metrics.RecordParseWarning()
			c.log().Warn(ctx, "skipping malformed feed row", logger.Error(err))
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			break
		}

		row := make(record.RawRow, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		rows = append(rows, row)
	}

	metrics.RecordRowsParsed(len(rows))
	return rows
}

// normalizeHeader trims a header cell and strips one trailing comma.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.TrimSuffix(h, ",")
	return strings.TrimSpace(h)
}
