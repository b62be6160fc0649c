package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Provider exposes read-only access to the application configuration.
// Handlers and services depend on this interface rather than on Config directly.
type Provider interface {
	GetServerAddr() string
	GetSessionSecret() string
	GetSessionHandoffSecret() string
	GetIssueAPIURL() string
	GetIssueAPITimeout() time.Duration
	GetEmailDomain() string
	GetLoginPath() string
	GetInventoryPath() string
	GetLandingPath() string
	GetProfileViewTTL() time.Duration
	GetDisplayLocation() *time.Location
	GetTracingEnabled() bool
	GetZipkinURL() string
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string `validate:"required"`
	SessionSecret string `validate:"required,min=16"`
	// HandoffSecret verifies the tokens the login flow signs for POST /session.
	HandoffSecret   string        `validate:"required,min=32,nefield=SessionSecret"`
	IssueAPIURL     string        `validate:"required,url"`
	IssueAPITimeout time.Duration `validate:"gt=0"`
	EmailDomain     string        `validate:"required,hostname"`
	LoginPath       string        `validate:"required,startswith=/"`
	InventoryPath   string        `validate:"required,startswith=/"`
	LandingPath     string        `validate:"required,startswith=/"`
	ProfileViewTTL  time.Duration `validate:"gt=0"`
	DisplayTimezone string        `validate:"required"`
	TracingEnabled  bool
	ZipkinURL       string `validate:"required_if=TracingEnabled true,omitempty,url"`

	location *time.Location
}

// New loads configuration from a .env file (if present) and environment variables.
// Missing optional values fall back to development defaults.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		ServerAddr:      getEnv("SERVER_ADDR", ":8080"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		HandoffSecret:   os.Getenv("SESSION_HANDOFF_SECRET"),
		IssueAPIURL:     getEnv("ISSUE_API_URL", "http://localhost:3000"),
		IssueAPITimeout: getDuration("ISSUE_API_TIMEOUT", 10*time.Second),
		EmailDomain:     getEnv("EMAIL_DOMAIN", "iitb.ac.in"),
		LoginPath:       getEnv("LOGIN_PATH", "/login"),
		InventoryPath:   getEnv("INVENTORY_PATH", "/inventory"),
		LandingPath:     getEnv("LANDING_PATH", "/"),
		ProfileViewTTL:  getDuration("PROFILE_VIEW_TTL", 30*time.Minute),
		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "Local"),
		TracingEnabled:  getBool("TRACING_ENABLED", false),
		ZipkinURL:       getEnv("ZIPKIN_URL", "http://localhost:9411/api/v2/spans"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	c.location = loc
	return nil
}

func (c *Config) GetServerAddr() string             { return c.ServerAddr }
func (c *Config) GetSessionSecret() string          { return c.SessionSecret }
func (c *Config) GetSessionHandoffSecret() string   { return c.HandoffSecret }
func (c *Config) GetIssueAPIURL() string            { return c.IssueAPIURL }
func (c *Config) GetIssueAPITimeout() time.Duration { return c.IssueAPITimeout }
func (c *Config) GetEmailDomain() string            { return c.EmailDomain }
func (c *Config) GetLoginPath() string              { return c.LoginPath }
func (c *Config) GetInventoryPath() string          { return c.InventoryPath }
func (c *Config) GetLandingPath() string            { return c.LandingPath }
func (c *Config) GetProfileViewTTL() time.Duration  { return c.ProfileViewTTL }
func (c *Config) GetTracingEnabled() bool           { return c.TracingEnabled }
func (c *Config) GetZipkinURL() string              { return c.ZipkinURL }

// GetDisplayLocation returns the time zone used when rendering instants.
func (c *Config) GetDisplayLocation() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("Ignoring malformed duration", "key", key, "value", v, "error", err)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Ignoring malformed boolean", "key", key, "value", v, "error", err)
		return fallback
	}
	return b
}
