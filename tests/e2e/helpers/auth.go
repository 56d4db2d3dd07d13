package helpers

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// AuthHelper drives the login and registration UI flows.
type AuthHelper struct {
	browser *BrowserHelper
}

// NewAuthHelper creates a new authentication helper.
func NewAuthHelper(browser *BrowserHelper) *AuthHelper {
	return &AuthHelper{browser: browser}
}

// waitBudgetMS bounds the post-submit redirect waits from the suite config,
// independent of whatever default timeout the page currently carries.
func (a *AuthHelper) waitBudgetMS() float64 {
	return float64(a.browser.Config.Timeout.Milliseconds())
}

// LoginUser performs the login flow and waits for the dashboard redirect.
// Empty credentials default to the canonical TestUser. A backend that never
// leaves the login page surfaces as a timeout error from the URL wait.
func (a *AuthHelper) LoginUser(email, password string) error {
	if email == "" {
		email = TestUser.Email
	}
	if password == "" {
		password = TestUser.Password
	}

	if err := a.browser.NavigateTo("/login"); err != nil {
		return fmt.Errorf("opening login page: %w", err)
	}

	page := a.browser.Page
	emailInput := page.Locator(`[data-testid="email-input"]`)
	if err := emailInput.WaitFor(); err != nil {
		return fmt.Errorf("email input not found: %w", err)
	}
	if err := emailInput.Fill(email); err != nil {
		return fmt.Errorf("filling email: %w", err)
	}
	if err := page.Locator(`[data-testid="password-input"]`).Fill(password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}
	if err := page.Locator(`[data-testid="login-button"]`).Click(); err != nil {
		return fmt.Errorf("submitting login form: %w", err)
	}

	if err := page.WaitForURL("**/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(a.waitBudgetMS()),
	}); err != nil {
		return fmt.Errorf("waiting for dashboard after login: %w", err)
	}
	return nil
}

// RegisterUser fills and submits the registration form. It does not wait for
// a post-submit destination; callers assert the outcome they expect.
func (a *AuthHelper) RegisterUser(user *UserData) error {
	if user == nil {
		user = &TestUser
	}

	if err := a.browser.NavigateTo("/register"); err != nil {
		return fmt.Errorf("opening register page: %w", err)
	}

	page := a.browser.Page
	fullName := page.Locator(`[data-testid="fullname-input"]`)
	if err := fullName.WaitFor(); err != nil {
		return fmt.Errorf("registration form not found: %w", err)
	}
	if err := fullName.Fill(user.FullName); err != nil {
		return fmt.Errorf("filling full name: %w", err)
	}
	if err := page.Locator(`[data-testid="username-input"]`).Fill(user.Username); err != nil {
		return fmt.Errorf("filling username: %w", err)
	}
	if err := page.Locator(`[data-testid="email-input"]`).Fill(user.Email); err != nil {
		return fmt.Errorf("filling email: %w", err)
	}
	if err := page.Locator(`[data-testid="password-input"]`).Fill(user.Password); err != nil {
		return fmt.Errorf("filling password: %w", err)
	}
	if err := page.Locator(`[data-testid="confirm-password-input"]`).Fill(user.Password); err != nil {
		return fmt.Errorf("filling password confirmation: %w", err)
	}
	if err := page.Locator(`[data-testid="register-button"]`).Click(); err != nil {
		return fmt.Errorf("submitting registration form: %w", err)
	}
	return nil
}

// Logout clicks the logout control and waits for the login redirect.
func (a *AuthHelper) Logout() error {
	page := a.browser.Page
	if err := page.Locator(`[data-testid="logout-button"]`).Click(); err != nil {
		return fmt.Errorf("clicking logout: %w", err)
	}
	if err := page.WaitForURL("**/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(a.waitBudgetMS()),
	}); err != nil {
		return fmt.Errorf("waiting for login after logout: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether the current page belongs to an authenticated
// session, judged by URL only.
func (a *AuthHelper) IsLoggedIn() bool {
	url := a.browser.Page.URL()
	if url == "" || strings.HasPrefix(url, "about:") || !strings.HasPrefix(url, a.browser.BaseURL) {
		return false
	}
	return !strings.HasSuffix(url, "/login") &&
		!strings.HasSuffix(url, "/register") &&
		url != a.browser.BaseURL+"/"
}
