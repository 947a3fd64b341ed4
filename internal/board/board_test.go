package board_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ovenside/menuboard/internal/board"
	"github.com/ovenside/menuboard/internal/models"
	"github.com/ovenside/menuboard/internal/render"
	"github.com/ovenside/menuboard/internal/source"
	"github.com/ovenside/menuboard/internal/throttle"
)

type stubFetcher struct {
	doc *models.MenuDocument
	err error
}

func (s *stubFetcher) FetchMenu(_ context.Context) (*models.MenuDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	// Hand out a copy; the controller owns the document for one pass.
	doc := *s.doc
	return &doc, nil
}

func sampleDoc() *models.MenuDocument {
	return &models.MenuDocument{
		MarketDate:  "2026-08-22",
		LastUpdated: "2026-08-21T16:30:00Z",
		Categories: []models.Category{
			{Name: "Breads", Items: []models.MenuItem{
				{Name: "Sourdough", Price: 6.5, Allergens: []string{"wheat"}},
				{Name: "Baguette", Price: 3, SoldOut: true},
			}},
			{Name: "Specials"},
		},
	}
}

func TestLoadRenders(t *testing.T) {
	c := board.New(&stubFetcher{doc: sampleDoc()}, "Ovenside", nil, nil)

	res := c.Load(context.Background())
	require.Equal(t, board.StateRendered, res.State)

	got := string(res.Body)
	require.Contains(t, got, "Sourdough")
	require.Contains(t, got, "$6.50")
	require.Contains(t, got, "Saturday, August 22, 2026")
	require.Contains(t, got, "Aug 21, 2026 at 4:30 PM")
	require.NotContains(t, got, "Specials")
}

func TestLoadFetchFailure(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	cause := fmt.Errorf("%w: 500 Internal Server Error", source.ErrStatus)
	c := board.New(&stubFetcher{err: cause}, "Ovenside", log, nil)

	res := c.Load(context.Background())
	require.Equal(t, board.StateFailed, res.State)
	require.Contains(t, string(res.Body), render.MsgLoadFailed)
	require.NotContains(t, string(res.Body), "500")
	require.Contains(t, logs.String(), "500 Internal Server Error")
}

func TestLoadEmptyMenu(t *testing.T) {
	c := board.New(&stubFetcher{doc: &models.MenuDocument{}}, "Ovenside", nil, nil)

	res := c.Load(context.Background())
	require.Equal(t, board.StateRendered, res.State)
	require.Contains(t, string(res.Body), render.MsgNoItems)
	require.NotContains(t, string(res.Body), render.MsgLoadFailed)
}

func TestLoadDropsBadItems(t *testing.T) {
	doc := &models.MenuDocument{
		Categories: []models.Category{
			{Name: "Breads", Items: []models.MenuItem{
				{Name: "Sourdough", Price: 6.5},
				{Name: "", Price: 2},
			}},
		},
	}
	c := board.New(&stubFetcher{doc: doc}, "Ovenside", nil, nil)

	res := c.Load(context.Background())
	require.Equal(t, board.StateRendered, res.State)
	require.Contains(t, string(res.Body), "Sourdough")
	require.Equal(t, 1, bytes.Count(res.Body, []byte(`<article class="item">`)))
}

func TestLoadSkipsHeaderForBadTimestamps(t *testing.T) {
	doc := &models.MenuDocument{
		MarketDate: "someday",
		Categories: []models.Category{
			{Name: "Breads", Items: []models.MenuItem{{Name: "Rye", Price: 5}}},
		},
	}
	c := board.New(&stubFetcher{doc: doc}, "Ovenside", nil, nil)

	res := c.Load(context.Background())
	require.Equal(t, board.StateRendered, res.State)
	require.NotContains(t, string(res.Body), "market-date")
}

func TestLoadIdempotent(t *testing.T) {
	c := board.New(&stubFetcher{doc: sampleDoc()}, "Ovenside", nil, nil)

	first := c.Load(context.Background())
	second := c.Load(context.Background())
	require.Equal(t, first.Body, second.Body)
}

func TestLoadThrottlesRepeatedFailureLogs(t *testing.T) {
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))

	c := board.New(
		&stubFetcher{err: errors.New("connection refused")},
		"Ovenside",
		log,
		throttle.New(16, time.Minute),
	)

	c.Load(context.Background())
	c.Load(context.Background())

	require.Equal(t, 1, bytes.Count(logs.Bytes(), []byte("menu load failed")))
}
