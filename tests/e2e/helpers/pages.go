package helpers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ExpectLoginPage verifies both conditions that define "being on the login
// page": the URL path and the login heading. Either failing is an error.
func ExpectLoginPage(page playwright.Page) error {
	if err := expectPath(page, "/login"); err != nil {
		return err
	}
	return expectHeading(page, `[data-testid="login-heading"]`, "Sign in")
}

// ExpectDashboardPage verifies the URL path and the welcome heading of the
// authenticated dashboard.
func ExpectDashboardPage(page playwright.Page) error {
	if err := expectPath(page, "/dashboard"); err != nil {
		return err
	}
	return expectHeading(page, `[data-testid="dashboard-heading"]`, "Welcome back")
}

func expectPath(page playwright.Page, want string) error {
	u, err := url.Parse(page.URL())
	if err != nil {
		return fmt.Errorf("parsing current URL %q: %w", page.URL(), err)
	}
	if u.Path != want {
		return fmt.Errorf("expected path %q, on %q", want, u.Path)
	}
	return nil
}

// headingWaitTimeoutMS bounds the heading visibility wait so a page
// assertion fails on its own budget, not the page default timeout.
const headingWaitTimeoutMS = 5_000

func expectHeading(page playwright.Page, selector, wantText string) error {
	heading := page.Locator(selector)
	if err := heading.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(headingWaitTimeoutMS),
	}); err != nil {
		return fmt.Errorf("heading %s not visible: %w", selector, err)
	}
	text, err := heading.TextContent()
	if err != nil {
		return fmt.Errorf("reading heading text: %w", err)
	}
	if !strings.Contains(text, wantText) {
		return fmt.Errorf("heading %q does not contain %q", text, wantText)
	}
	return nil
}
