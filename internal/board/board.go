// Package board drives one menu render pass: fetch the document, validate it,
// format the header fields, and build the page. Every failure kind is absorbed
// here and collapsed into the fixed user-facing message; the concrete cause
// only reaches the logs.
package board

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ovenside/menuboard/internal/format"
	"github.com/ovenside/menuboard/internal/models"
	"github.com/ovenside/menuboard/internal/render"
	"github.com/ovenside/menuboard/internal/throttle"
)

// State names the phases of a render pass. A pass ends in Rendered or Failed;
// the degenerate "no items" page counts as Rendered.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fetcher retrieves the menu document.
type Fetcher interface {
	FetchMenu(ctx context.Context) (*models.MenuDocument, error)
}

// Controller runs render passes. It holds no per-pass state, so a single
// Controller is safe to share across concurrent requests.
type Controller struct {
	fetch Fetcher
	title string
	log   *slog.Logger
	warn  *throttle.Suppressor
}

// Result is the outcome of one pass. Body is always a complete page; Load
// never returns an error to its caller.
type Result struct {
	State State
	Body  []byte
}

// New constructs a Controller. warn may be nil when log suppression is not
// wanted (the exporter runs one pass and has nothing to suppress).
func New(fetch Fetcher, title string, logger *slog.Logger, warn *throttle.Suppressor) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{fetch: fetch, title: title, log: logger, warn: warn}
}

// Load runs one render pass.
func (c *Controller) Load(ctx context.Context) Result {
	log := c.log.With(slog.String("pass", uuid.NewString()))
	log.Debug("render pass", slog.String("state", StateLoading.String()))

	doc, err := c.fetch.FetchMenu(ctx)
	if err != nil {
		if c.warn == nil || c.warn.Allow(err.Error()) {
			log.Error("menu load failed", slog.Any("err", err))
		}
		return Result{State: StateFailed, Body: c.messagePage(log, render.MsgLoadFailed)}
	}

	if dropped := doc.Normalize(); dropped > 0 {
		if c.warn == nil || c.warn.Allow("dropped items") {
			log.Warn("dropped unrenderable items", slog.Int("count", dropped))
		}
	}

	h := render.Header{Title: c.title}
	if doc.MarketDate != "" {
		if ts := format.ParseTimestamp(doc.MarketDate); !ts.IsZero() {
			h.MarketDate = format.Date(ts)
		} else {
			log.Debug("unparseable market_date", slog.String("raw", doc.MarketDate))
		}
	}
	if doc.LastUpdated != "" {
		if ts := format.ParseTimestamp(doc.LastUpdated); !ts.IsZero() {
			h.LastUpdated = format.DateTime(ts)
		} else {
			log.Debug("unparseable last_updated", slog.String("raw", doc.LastUpdated))
		}
	}

	body, err := render.HTML(render.Document(h, doc))
	if err != nil {
		log.Error("serialize page", slog.Any("err", err))
		return Result{State: StateFailed, Body: []byte(render.MsgLoadFailed)}
	}

	log.Info("render pass",
		slog.String("state", StateRendered.String()),
		slog.Int("categories", len(doc.Categories)),
	)
	return Result{State: StateRendered, Body: body}
}

func (c *Controller) messagePage(log *slog.Logger, msg string) []byte {
	body, err := render.HTML(render.MessagePage(render.Header{Title: c.title}, msg))
	if err != nil {
		log.Error("serialize message page", slog.Any("err", err))
		return []byte(msg)
	}
	return body
}
