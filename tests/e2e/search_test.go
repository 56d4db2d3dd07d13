//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a5c-ai/hub-e2e/tests/e2e/helpers"
)

func searchFor(t *testing.T, browser *helpers.BrowserHelper, query string) {
	t.Helper()
	require.NoError(t, browser.Page.Locator(`[data-testid="search-input"]`).Fill(query))
	require.NoError(t, browser.Page.Locator(`[data-testid="search-button"]`).Click())
	require.NoError(t, helpers.WaitForLoadingToComplete(browser.Page))
}

func TestSearchFindsSeededRepository(t *testing.T) {
	browser, auth := setupBrowser(t)

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, browser.NavigateTo("/search"))

	searchFor(t, browser, "hello")

	repoHit := browser.Page.Locator(`[data-testid="search-result-repo"]`)
	require.NoError(t, repoHit.WaitFor())
	text, err := repoHit.TextContent()
	require.NoError(t, err)
	assert.Equal(t, "testuser/hello-world", text)
}

func TestSearchMockedMixedResults(t *testing.T) {
	browser, auth := setupBrowser(t)
	mock := helpers.NewMockAPI(t, browser.Page)

	mock.StubJSON("GET", "**/api/v1/search?*", 200, map[string]any{
		"repositories": []map[string]any{{"owner": "acme", "name": "rocket"}},
		"issues":       []map[string]any{{"title": "Mocked issue hit"}},
		"users":        []map[string]any{{"username": "mockuser"}},
	})

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, browser.NavigateTo("/search"))

	searchFor(t, browser, "anything")

	for _, testID := range []string{"search-result-repo", "search-result-issue", "search-result-user"} {
		count, err := browser.Page.Locator(`[data-testid="` + testID + `"]`).Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count, "one %s expected", testID)
	}
	assert.Equal(t, 1, mock.Calls("GET", "**/api/v1/search?*"))
}

func TestSearchNoResults(t *testing.T) {
	browser, auth := setupBrowser(t)

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, browser.NavigateTo("/search"))

	searchFor(t, browser, "zzz-no-such-thing")

	empty := browser.Page.Locator(`[data-testid="empty-state"]`)
	require.NoError(t, empty.WaitFor())
	text, err := empty.TextContent()
	require.NoError(t, err)
	assert.Contains(t, text, "No results")
}
