package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ovenside/menuboard/internal/board"
	"github.com/ovenside/menuboard/internal/config"
	"github.com/ovenside/menuboard/internal/logger"
	"github.com/ovenside/menuboard/internal/source"
	"github.com/ovenside/menuboard/internal/throttle"
)

func main() {
	log := logger.New("server")
	cfg, err := config.LoadServer()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	src, err := source.New(cfg.SourceURL, cfg.FetchTimeout, log)
	if err != nil {
		log.Error("init menu source", slog.Any("err", err))
		os.Exit(1)
	}

	ctrl := board.New(src, cfg.BakeryName, log, throttle.New(cfg.WarnCapacity, cfg.WarnTTL))

	srv := &server{log: log, board: ctrl, src: src}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", srv.handleBoard)
	r.Get("/health", srv.handleHealth)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("menu board server starting",
			slog.String("addr", cfg.BindAddr),
			slog.String("source", cfg.SourceURL),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type menuPinger interface {
	Ping(ctx context.Context) error
}

type server struct {
	log   *slog.Logger
	board *board.Controller
	src   menuPinger
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleBoard runs one render pass per request. The page body is always a
// complete document; only the status code distinguishes an upstream failure.
func (s *server) handleBoard(w http.ResponseWriter, r *http.Request) {
	res := s.board.Load(r.Context())

	status := http.StatusOK
	if res.State == board.StateFailed {
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(res.Body); err != nil {
		s.log.Debug("write response", slog.Any("err", err))
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.src.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
