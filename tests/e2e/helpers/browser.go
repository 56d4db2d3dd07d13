// Package helpers is the shared harness layer of the E2E suite: browser
// lifecycle, authentication flows, the loading barrier, page-state
// assertions, screenshot capture and per-test API mocking.
package helpers

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/a5c-ai/hub-e2e/tests/e2e/config"
)

// BrowserHelper provides browser setup and teardown for tests.
type BrowserHelper struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *config.TestConfig
	// BaseURL is resolved from Config but may be overridden before Setup,
	// e.g. to point a single test at an embedded fixture forge.
	BaseURL string
	t       *testing.T
}

// NewBrowserHelper creates a new browser helper instance.
func NewBrowserHelper(t *testing.T) *BrowserHelper {
	cfg := config.GetConfig()
	return &BrowserHelper{
		Config:  cfg,
		BaseURL: cfg.BaseURL,
		t:       t,
	}
}

// Setup initializes Playwright and creates a fresh context and page.
func (b *BrowserHelper) Setup() error {
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1" {
		if err := playwright.Install(); err != nil {
			return fmt.Errorf("could not install playwright browsers: %w", err)
		}
	}
	pw, err := playwright.Run()
	if err != nil {
		// One retry after an explicit driver install; driver/image version
		// skew is the usual cause.
		_ = playwright.Install()
		pw, err = playwright.Run()
		if err != nil {
			return fmt.Errorf("could not start playwright after retry: %w", err)
		}
	}
	b.Playwright = pw

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Config.Headless),
		SlowMo:   playwright.Float(float64(b.Config.SlowMo)),
	})
	if err != nil {
		return fmt.Errorf("could not launch browser: %w", err)
	}
	b.Browser = browser

	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	}
	if b.Config.Videos {
		ctxOpts.RecordVideo = &playwright.RecordVideo{
			Dir: "./test-results/videos",
		}
	}
	context, err := browser.NewContext(ctxOpts)
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	b.Context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	b.Page = page
	page.SetDefaultTimeout(float64(b.Config.Timeout.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(b.Config.Timeout.Milliseconds()))

	return nil
}

// SetupOrSkip runs Setup and skips the test when no browser is available.
func (b *BrowserHelper) SetupOrSkip() {
	b.t.Helper()
	if err := b.Setup(); err != nil {
		b.TearDown()
		b.t.Skipf("browser not available: %v", err)
	}
}

// TearDown captures a failure screenshot and releases all browser resources.
func (b *BrowserHelper) TearDown() {
	if b.t.Failed() && b.Config.Screenshots && b.Page != nil {
		name := fmt.Sprintf("%s_%d", b.t.Name(), time.Now().Unix())
		if err := TakeScreenshot(b.Page, name); err != nil {
			b.t.Logf("failure screenshot not captured: %v", err)
		}
	}

	if b.Page != nil {
		_ = b.Page.Close()
	}
	if b.Context != nil {
		_ = b.Context.Close()
	}
	if b.Browser != nil {
		_ = b.Browser.Close()
	}
	if b.Playwright != nil {
		_ = b.Playwright.Stop()
	}
}

// NavigateTo navigates to a path relative to the base URL.
func (b *BrowserHelper) NavigateTo(path string) error {
	url := b.BaseURL + path
	if _, err := b.Page.Goto(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}
