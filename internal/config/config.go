package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Common contains menu-source parameters shared by every binary.
type Common struct {
	SourceURL    string
	FetchTimeout time.Duration
}

// Server holds configuration for the menu board HTTP server.
type Server struct {
	Common
	BindAddr     string
	BakeryName   string
	WarnCapacity int
	WarnTTL      time.Duration
}

// Export configures the one-shot page exporter.
type Export struct {
	Common
	BakeryName string
	OutputPath string
}

// LoadServer builds a Server config from environment variables. A .env file in
// the working directory is honored when present.
func LoadServer() (*Server, error) {
	_ = godotenv.Load()

	c := &Server{
		Common:       loadCommon(),
		BindAddr:     getEnv("SERVER_BIND_ADDR", "0.0.0.0:8080"),
		BakeryName:   getEnv("BAKERY_NAME", "The Daily Crumb"),
		WarnCapacity: getInt("SERVER_WARN_CAPACITY", 256),
		WarnTTL:      getDuration("SERVER_WARN_TTL", "5m"),
	}

	if err := c.Common.validate(); err != nil {
		return nil, err
	}
	if c.WarnCapacity <= 0 {
		return nil, fmt.Errorf("SERVER_WARN_CAPACITY must be positive")
	}
	if c.WarnTTL <= 0 {
		return nil, fmt.Errorf("SERVER_WARN_TTL must be positive")
	}

	return c, nil
}

// LoadExport builds an Export config from environment variables.
func LoadExport() (*Export, error) {
	_ = godotenv.Load()

	c := &Export{
		Common:     loadCommon(),
		BakeryName: getEnv("BAKERY_NAME", "The Daily Crumb"),
		OutputPath: getEnv("EXPORT_OUTPUT", "menu.html"),
	}

	if err := c.Common.validate(); err != nil {
		return nil, err
	}
	if c.OutputPath == "" {
		return nil, fmt.Errorf("EXPORT_OUTPUT must not be empty")
	}

	return c, nil
}

func loadCommon() Common {
	return Common{
		SourceURL:    getEnv("MENU_SOURCE_URL", "http://localhost:9000/data/menu.json"),
		FetchTimeout: getDuration("MENU_FETCH_TIMEOUT", "10s"),
	}
}

func (c Common) validate() error {
	u, err := url.Parse(c.SourceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("MENU_SOURCE_URL must be an absolute URL, got %q", c.SourceURL)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("MENU_FETCH_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
