package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ovenside/menuboard/internal/board"
	"github.com/ovenside/menuboard/internal/config"
	"github.com/ovenside/menuboard/internal/logger"
	"github.com/ovenside/menuboard/internal/source"
)

// export runs one render pass and writes the page to a file. Meant for cron:
// a failed pass exits non-zero instead of publishing the error page.
func main() {
	log := logger.New("export")
	cfg, err := config.LoadExport()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	src, err := source.New(cfg.SourceURL, cfg.FetchTimeout, log)
	if err != nil {
		log.Error("init menu source", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ctrl := board.New(src, cfg.BakeryName, log, nil)
	res := ctrl.Load(ctx)
	if res.State != board.StateRendered {
		log.Error("menu load failed, not writing output")
		os.Exit(1)
	}

	if err := os.WriteFile(cfg.OutputPath, res.Body, 0o644); err != nil {
		log.Error("write output", slog.Any("err", err), slog.String("path", cfg.OutputPath))
		os.Exit(1)
	}

	log.Info("menu exported",
		slog.String("path", cfg.OutputPath),
		slog.Int("bytes", len(res.Body)),
	)
}
