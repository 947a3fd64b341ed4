package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/ovenside/menuboard/internal/models"
)

// Failure kinds. The board collapses all of them into one user-facing message,
// but they stay distinct here for logging and tests.
var (
	ErrTransport = errors.New("menu source unreachable")
	ErrStatus    = errors.New("menu source returned failure status")
	ErrDecode    = errors.New("menu document malformed")
)

// Client fetches the published menu document over HTTP.
type Client struct {
	httpc *http.Client
	url   string
	log   *slog.Logger
}

// New instantiates the menu source client.
func New(rawURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("source url must be absolute, got %q", rawURL)
	}

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		httpc: &http.Client{Timeout: timeout},
		url:   rawURL,
		log:   logger,
	}, nil
}

// FetchMenu performs a single GET of the menu document. No retries and no
// caching; each render pass fetches fresh.
func (c *Client) FetchMenu(ctx context.Context) (*models.MenuDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return nil, fmt.Errorf("%w: %s", ErrStatus, res.Status)
	}

	var doc models.MenuDocument
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.log.Debug("menu fetched",
		slog.Int("categories", len(doc.Categories)),
		slog.String("market_date", doc.MarketDate),
	)
	return &doc, nil
}

// Ping checks that the menu resource is reachable. Used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: %s", ErrStatus, res.Status)
	}
	return nil
}
