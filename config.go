package vizboard

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for a vizboard dashboard.
type Config struct {
	Title    string // Page title (default "Visualization Dashboard")
	ImageDir string // Directory listed on every pass (default "visualization")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // Render history SQLite path (default "data/vizboard.db")

	HistoryRetention time.Duration // Passes older than this are pruned at startup (default 30 days)

	InsightsPath  string // Optional YAML captions file; empty uses the built-in mapping
	MaxImageWidth int    // Images wider than this are downscaled (default 1200)

	AdminPassword string // Enables /admin/ when set
	SessionSecret string // Required when AdminPassword is set
	CookieSecure  bool   // Set true for HTTPS
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.Title == "" {
		c.Title = "Visualization Dashboard"
	}
	if c.ImageDir == "" {
		c.ImageDir = "visualization"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/vizboard.db"
	}
	if c.HistoryRetention == 0 {
		c.HistoryRetention = 30 * 24 * time.Hour
	}
	if c.MaxImageWidth == 0 {
		c.MaxImageWidth = defaultMaxImageWidth
	}
}

// ConfigFromEnv reads a Config from VIZBOARD_* environment variables.
// Unset variables are left empty and filled in by New.
func ConfigFromEnv() Config {
	return Config{
		Title:         os.Getenv("VIZBOARD_TITLE"),
		ImageDir:      os.Getenv("VIZBOARD_IMAGE_DIR"),
		Addr:          os.Getenv("VIZBOARD_ADDR"),
		DatabasePath:  os.Getenv("VIZBOARD_DB"),
		InsightsPath:  os.Getenv("VIZBOARD_INSIGHTS"),
		MaxImageWidth: EnvInt("VIZBOARD_MAX_WIDTH", 0),
		AdminPassword: os.Getenv("VIZBOARD_ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("VIZBOARD_SESSION_SECRET"),
		CookieSecure:  EnvBool("VIZBOARD_COOKIE_SECURE", false),
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithInsights replaces the caption mapping used for every pass.
func WithInsights(in Insights) Option {
	return func(a *App) {
		a.Insights = in
		a.insightsSet = true
	}
}

// WithHistory sets the store render passes are recorded in.
func WithHistory(s *Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithStaticDir sets the directory served under /public/ (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvInt returns the integer value of key, or fallback if unset or invalid.
func EnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// EnvBool returns the boolean value of key, or fallback if unset or invalid.
func EnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
