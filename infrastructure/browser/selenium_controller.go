package browser

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"page_automation/domain/interfaces"
	"page_automation/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
)

const chromeDriverPort = 9515

// SeleniumSession drives one browser window through a WebDriver server
type SeleniumSession struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  logrus.FieldLogger
	baseURL *url.URL
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver() (string, error) {
	if path := os.Getenv("BROWSER_DRIVER_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// startLocalDriver starts chromedriver on chromeDriverPort and returns its hub URL
func startLocalDriver(logger logrus.FieldLogger) (*selenium.Service, string, error) {
	driverPath, err := findChromeDriver()
	if err != nil {
		return nil, "", fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Infof("Using ChromeDriver at: %s", driverPath)

	service, err := selenium.NewChromeDriverService(driverPath, chromeDriverPort)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start chromedriver: %w", err)
	}
	return service, fmt.Sprintf("http://localhost:%d/wd/hub", chromeDriverPort), nil
}

// NewSeleniumSession - connects to the configured WebDriver and opens Chrome.
// An empty or "local" WEBDRIVER_URL starts a local chromedriver instead.
func NewSeleniumSession(cfg *config.Config, logger logrus.FieldLogger) (*SeleniumSession, error) {
	var service *selenium.Service
	hubURL := cfg.WebDriverURL
	if cfg.UsesLocalDriver() {
		var err error
		service, hubURL, err = startLocalDriver(logger)
		if err != nil {
			return nil, err
		}
	}
	stopService := func() {
		if service != nil {
			service.Stop()
		}
	}

	caps := selenium.Capabilities{
		"browserName":         "chrome",
		"acceptInsecureCerts": cfg.IgnoreHTTPSErrors,
	}

	args := []string{
		"--disable-dev-shm-usage",
		"--no-sandbox",
		fmt.Sprintf("--window-size=%d,%d", cfg.ViewportWidth, cfg.ViewportHeight),
	}
	if cfg.Headless {
		args = append(args, "--headless=new")
	}
	if cfg.IgnoreHTTPSErrors {
		args = append(args, "--ignore-certificate-errors")
	}
	caps.AddChrome(chrome.Capabilities{Args: args})

	wd, err := selenium.NewRemote(caps, hubURL)
	if err != nil {
		stopService()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}
	if err := wd.SetPageLoadTimeout(cfg.NavigationTimeout); err != nil {
		logger.WithError(err).Warn("Failed to set page load timeout")
	}

	session, err := NewSeleniumSessionFromDriver(wd, cfg.BaseURL, logger)
	if err != nil {
		wd.Quit()
		stopService()
		return nil, err
	}
	session.service = service
	logger.WithField("webdriver", hubURL).Info("Selenium browser started")
	return session, nil
}

// NewSeleniumSessionFromDriver wraps an existing WebDriver
func NewSeleniumSessionFromDriver(wd selenium.WebDriver, baseURL string, logger logrus.FieldLogger) (*SeleniumSession, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return &SeleniumSession{
		wd:      wd,
		logger:  logger,
		baseURL: base,
	}, nil
}

// Element - resolves a CSS selector in the current window
func (s *SeleniumSession) Element(selector string) interfaces.Element {
	return &seleniumElement{wd: s.wd, selector: selector}
}

// Navigate - navigates browser to specified URL, relative paths use the base URL
func (s *SeleniumSession) Navigate(ctx context.Context, rawURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	target := s.baseURL.ResolveReference(ref).String()
	s.logger.WithField("url", target).Info("Navigating")
	if err := s.wd.Get(target); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	return nil
}

// CurrentURL - returns current page URL
func (s *SeleniumSession) CurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

// Screenshot - takes screenshot of current page
func (s *SeleniumSession) Screenshot(ctx context.Context) ([]byte, error) {
	return s.wd.Screenshot()
}

// Close - ends the WebDriver session and stops a local chromedriver
func (s *SeleniumSession) Close() error {
	var errs []error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("failed to quit webdriver: %w", err))
		}
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop chromedriver: %w", err))
		}
	}
	return errors.Join(errs...)
}

var _ interfaces.Session = (*SeleniumSession)(nil)
