// Package config loads browser and action settings from the environment.
// A .env file in the working directory is read first when present; real
// environment variables take precedence over it.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mstoykov/envconfig"
	"github.com/sirupsen/logrus"

	"page_automation/domain/entities"
)

const (
	EnginePlaywright = "playwright"
	EngineSelenium   = "selenium"

	// LocalWebDriver as WEBDRIVER_URL starts chromedriver on this machine
	LocalWebDriver = "local"
)

// Config holds all runtime configuration.
type Config struct {
	// Browser
	BaseURL           string        `envconfig:"BASE_URL" default:"https://demo.netbox.dev/"`
	Engine            string        `envconfig:"BROWSER_ENGINE" default:"playwright"`
	BrowserName       string        `envconfig:"BROWSER_NAME" default:"chromium"`
	Headless          bool          `envconfig:"HEADLESS" default:"true"`
	ViewportWidth     int           `envconfig:"VIEWPORT_WIDTH" default:"1920"`
	ViewportHeight    int           `envconfig:"VIEWPORT_HEIGHT" default:"1080"`
	IgnoreHTTPSErrors bool          `envconfig:"IGNORE_HTTPS_ERRORS" default:"true"`
	BypassCSP         bool          `envconfig:"BYPASS_CSP" default:"true"`
	SlowMo            time.Duration `envconfig:"SLOW_MO" default:"0s"`
	WebDriverURL      string        `envconfig:"WEBDRIVER_URL" default:"http://localhost:9515/wd/hub"`

	// Timeouts
	ActionTimeout     time.Duration `envconfig:"ACTION_TIMEOUT" default:"4s"`
	NavigationTimeout time.Duration `envconfig:"NAVIGATION_TIMEOUT" default:"30s"`

	// Reporting and logging
	ReportPath string `envconfig:"REPORT_PATH"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"text"`
}

// ValidationError represents a configuration validation error with multiple issues.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Load reads an optional .env file and decodes the environment into Config.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}
	return FromLookup(nil)
}

// FromLookup decodes configuration using lookup instead of the process
// environment. A nil lookup reads the process environment.
func FromLookup(lookup func(key string) (string, bool)) (*Config, error) {
	var cfg Config
	var err error
	if lookup == nil {
		err = envconfig.Process("", &cfg)
	} else {
		err = envconfig.Process("", &cfg, lookup)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var problems []string

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("BASE_URL must be an absolute URL, got %q", c.BaseURL))
	}
	switch c.Engine {
	case EnginePlaywright:
		switch c.BrowserName {
		case "chromium", "firefox", "webkit":
		default:
			problems = append(problems, fmt.Sprintf("BROWSER_NAME must be chromium, firefox or webkit, got %q", c.BrowserName))
		}
	case EngineSelenium:
		if !c.UsesLocalDriver() {
			if u, err := url.Parse(c.WebDriverURL); err != nil || u.Scheme == "" || u.Host == "" {
				problems = append(problems, fmt.Sprintf("WEBDRIVER_URL must be an absolute URL or %q, got %q", LocalWebDriver, c.WebDriverURL))
			}
		}
	default:
		problems = append(problems, fmt.Sprintf("BROWSER_ENGINE must be %s or %s, got %q", EnginePlaywright, EngineSelenium, c.Engine))
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		problems = append(problems, fmt.Sprintf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight))
	}
	if c.ActionTimeout <= 0 {
		problems = append(problems, "ACTION_TIMEOUT must be positive")
	}
	if c.NavigationTimeout <= 0 {
		problems = append(problems, "NAVIGATION_TIMEOUT must be positive")
	}
	if c.SlowMo < 0 {
		problems = append(problems, "SLOW_MO must not be negative")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL is invalid: %v", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	if len(problems) > 0 {
		return &ValidationError{Errors: problems}
	}
	return nil
}

// UsesLocalDriver reports whether selenium should start its own chromedriver
func (c *Config) UsesLocalDriver() bool {
	return c.WebDriverURL == "" || c.WebDriverURL == LocalWebDriver
}

// WaitPolicy returns the default visibility wait for wrapped actions.
func (c *Config) WaitPolicy() entities.WaitPolicy {
	return entities.WaitPolicy{Timeout: c.ActionTimeout}
}
