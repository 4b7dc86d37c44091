package browser

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"page_automation/domain/interfaces"
	"page_automation/infrastructure/config"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// PlaywrightSession drives one browser page through playwright
type PlaywrightSession struct {
	pw                *playwright.Playwright
	browser           playwright.Browser
	context           playwright.BrowserContext
	page              playwright.Page
	pagesMutex        sync.Mutex
	logger            logrus.FieldLogger
	navigationTimeout time.Duration
}

// NewPlaywrightSession - starts playwright, launches the configured browser and opens a page
func NewPlaywrightSession(cfg *config.Config, logger logrus.FieldLogger) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := browserTypeFor(pw, cfg.BrowserName)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(cfg.BaseURL),
		Viewport: &playwright.Size{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
		IgnoreHttpsErrors: playwright.Bool(cfg.IgnoreHTTPSErrors),
		BypassCSP:         playwright.Bool(cfg.BypassCSP),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}
	browserContext.SetDefaultNavigationTimeout(playwrightMillis(cfg.NavigationTimeout))

	page, err := browserContext.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	session := NewPlaywrightSessionFromPage(page, logger, cfg.NavigationTimeout)
	session.pw = pw
	session.browser = browser
	session.context = browserContext

	browserContext.OnPage(func(newPage playwright.Page) {
		session.pagesMutex.Lock()
		defer session.pagesMutex.Unlock()
		session.logger.WithField("url", newPage.URL()).Info("Switching to newly opened page")
		session.page = newPage
	})

	logger.WithFields(logrus.Fields{
		"browser":  cfg.BrowserName,
		"headless": cfg.Headless,
		"base_url": cfg.BaseURL,
	}).Info("Playwright browser started")

	return session, nil
}

// NewPlaywrightSessionFromPage wraps an already opened page. Close only
// closes the page when the session did not launch the browser itself.
func NewPlaywrightSessionFromPage(page playwright.Page, logger logrus.FieldLogger, navigationTimeout time.Duration) *PlaywrightSession {
	page.OnDialog(func(dialog playwright.Dialog) {
		logger.WithField("message", dialog.Message()).Info("Accepting dialog")
		dialog.Accept()
	})
	return &PlaywrightSession{
		page:              page,
		logger:            logger,
		navigationTimeout: navigationTimeout,
	}
}

func browserTypeFor(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "", "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
}

// Page returns the page elements are currently resolved against
func (b *PlaywrightSession) Page() playwright.Page {
	b.pagesMutex.Lock()
	defer b.pagesMutex.Unlock()
	return b.page
}

// Element - resolves a selector on the current page
func (b *PlaywrightSession) Element(selector string) interfaces.Element {
	return newPlaywrightElement(selector, b.Page().Locator(selector))
}

// Navigate - navigates to the specified URL, relative paths use the context base URL
func (b *PlaywrightSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.WithField("url", url).Info("Navigating")

	_, err := b.Page().Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(playwrightMillis(boundedTimeout(ctx, b.navigationTimeout))),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// CurrentURL - returns the current page URL
func (b *PlaywrightSession) CurrentURL(ctx context.Context) (string, error) {
	return b.Page().URL(), nil
}

// Screenshot - captures the full current page
func (b *PlaywrightSession) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := b.Page().Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to take screenshot: %w", err)
	}
	return data, nil
}

// Close - closes the browser and stops playwright
func (b *PlaywrightSession) Close() error {
	if b.browser == nil {
		return b.Page().Close()
	}
	if err := b.browser.Close(); err != nil {
		b.logger.WithError(err).Warn("Failed to close browser")
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
	}
	return nil
}

// boundedTimeout shortens timeout so it never outlives the context deadline
func boundedTimeout(ctx context.Context, timeout time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return timeout
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return time.Millisecond
	}
	if remaining < timeout {
		return remaining
	}
	return timeout
}

// playwrightMillis converts d to the millisecond float playwright expects,
// rounding up to at least 1ms because playwright reads 0 as "no timeout".
func playwrightMillis(d time.Duration) float64 {
	return math.Max(1, math.Ceil(float64(d)/float64(time.Millisecond)))
}

var _ interfaces.Session = (*PlaywrightSession)(nil)
