package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ovenside/menuboard/internal/config"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("MENU_SOURCE_URL", "")
	t.Setenv("MENU_FETCH_TIMEOUT", "")
	t.Setenv("SERVER_BIND_ADDR", "")
	t.Setenv("BAKERY_NAME", "")

	cfg, err := config.LoadServer()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:9000/data/menu.json", cfg.SourceURL)
	require.Equal(t, 10*time.Second, cfg.FetchTimeout)
	require.Equal(t, "0.0.0.0:8080", cfg.BindAddr)
	require.Equal(t, "The Daily Crumb", cfg.BakeryName)
	require.Equal(t, 256, cfg.WarnCapacity)
	require.Equal(t, 5*time.Minute, cfg.WarnTTL)
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("MENU_SOURCE_URL", "https://menu.example.com/today.json")
	t.Setenv("MENU_FETCH_TIMEOUT", "3s")
	t.Setenv("SERVER_BIND_ADDR", ":9090")
	t.Setenv("BAKERY_NAME", "Ovenside")
	t.Setenv("SERVER_WARN_CAPACITY", "17")
	t.Setenv("SERVER_WARN_TTL", "90s")

	cfg, err := config.LoadServer()
	require.NoError(t, err)

	require.Equal(t, "https://menu.example.com/today.json", cfg.SourceURL)
	require.Equal(t, 3*time.Second, cfg.FetchTimeout)
	require.Equal(t, ":9090", cfg.BindAddr)
	require.Equal(t, "Ovenside", cfg.BakeryName)
	require.Equal(t, 17, cfg.WarnCapacity)
	require.Equal(t, 90*time.Second, cfg.WarnTTL)
}

func TestLoadServerRejectsRelativeSourceURL(t *testing.T) {
	t.Setenv("MENU_SOURCE_URL", "/data/menu.json")

	_, err := config.LoadServer()
	require.Error(t, err)
}

func TestLoadServerBadDurationFallsBack(t *testing.T) {
	t.Setenv("MENU_SOURCE_URL", "")
	t.Setenv("MENU_FETCH_TIMEOUT", "not-a-duration")

	cfg, err := config.LoadServer()
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, cfg.FetchTimeout)
}

func TestLoadExport(t *testing.T) {
	t.Setenv("MENU_SOURCE_URL", "https://menu.example.com/today.json")
	t.Setenv("MENU_FETCH_TIMEOUT", "2s")
	t.Setenv("EXPORT_OUTPUT", "out/board.html")
	t.Setenv("BAKERY_NAME", "Ovenside")

	cfg, err := config.LoadExport()
	require.NoError(t, err)

	require.Equal(t, "https://menu.example.com/today.json", cfg.SourceURL)
	require.Equal(t, 2*time.Second, cfg.FetchTimeout)
	require.Equal(t, "out/board.html", cfg.OutputPath)
	require.Equal(t, "Ovenside", cfg.BakeryName)
}
