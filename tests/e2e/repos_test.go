//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a5c-ai/hub-e2e/tests/e2e/helpers"
)

func TestDashboardRepositoryList(t *testing.T) {
	browser, auth := setupBrowser(t)

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, helpers.WaitForLoadingToComplete(browser.Page))

	items := browser.Page.Locator(`[data-testid="repo-item"]`)
	count, err := items.Count()
	require.NoError(t, err)
	assert.Greater(t, count, 0, "seeded repositories should be listed")

	first, err := items.First().TextContent()
	require.NoError(t, err)
	assert.Contains(t, first, "testuser/")

	// Relative timestamps come from the list endpoint, not the page.
	updated := browser.Page.Locator(`[data-testid="repo-updated"]`)
	text, err := updated.First().TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "ago")
}

func TestRepositoryOverviewRendersReadme(t *testing.T) {
	browser, auth := setupBrowser(t)

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, browser.NavigateTo("/testuser/hello-world"))

	heading := browser.Page.Locator(`[data-testid="repo-heading"]`)
	require.NoError(t, heading.WaitFor())
	text, err := heading.TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "testuser/hello-world")

	// README markdown is rendered server-side into sanitized HTML.
	readmeHeading := browser.Page.Locator(`[data-testid="repo-readme"] h1`)
	readmeText, err := readmeHeading.TextContent()
	require.NoError(t, err)
	assert.Equal(t, "Hello World", readmeText)

	stars, err := browser.Page.Locator(`[data-testid="repo-stars"]`).TextContent()
	require.NoError(t, err)
	assert.Equal(t, "42", stars)
}

func TestPrivateRepositoryBadge(t *testing.T) {
	browser, auth := setupBrowser(t)

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, browser.NavigateTo("/testuser/infra-tools"))

	badge := browser.Page.Locator(`[data-testid="repo-private-badge"]`)
	require.NoError(t, badge.WaitFor())
	text, err := badge.TextContent()
	require.NoError(t, err)
	assert.Equal(t, "Private", text)
}

func TestRepositoryListMocked(t *testing.T) {
	browser, auth := setupBrowser(t)
	mock := helpers.NewMockAPI(t, browser.Page)

	mock.StubJSON("GET", "**/api/v1/repositories", 200, map[string]any{
		"repositories": []map[string]any{
			{"owner": "acme", "name": "rocket", "updated_ago": "2 minutes ago"},
			{"owner": "acme", "name": "anvil", "updated_ago": "1 hour ago"},
		},
	})

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, helpers.WaitForLoadingToComplete(browser.Page))

	items := browser.Page.Locator(`[data-testid="repo-item"]`)
	count, err := items.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count, "exactly the stubbed repositories should render")
	assert.Equal(t, 1, mock.Calls("GET", "**/api/v1/repositories"))
}

func TestRepositoryListErrorState(t *testing.T) {
	browser, auth := setupBrowser(t)
	mock := helpers.NewMockAPI(t, browser.Page)

	mock.StubError("GET", "**/api/v1/repositories", 500, "internal error")

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, helpers.WaitForLoadingToComplete(browser.Page))

	errMsg := browser.Page.Locator(`[data-testid="error-message"]`)
	require.NoError(t, errMsg.WaitFor())
	text, err := errMsg.TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "Failed to load repositories")
}
