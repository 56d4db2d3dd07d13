//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a5c-ai/hub-e2e/tests/e2e/helpers"
)

func TestAdminPageListsUsersAndRunners(t *testing.T) {
	browser, auth := setupBrowser(t)

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, browser.NavigateTo("/admin"))
	require.NoError(t, helpers.WaitForLoadingToComplete(browser.Page))

	users := browser.Page.Locator(`[data-testid="admin-user-item"]`)
	userCount, err := users.Count()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, userCount, 2, "seeded accounts should be listed")

	badge := browser.Page.Locator(`[data-testid="admin-badge"]`)
	badgeCount, err := badge.Count()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, badgeCount, 1, "the canonical user is an admin")

	online := browser.Page.Locator(`[data-testid="runner-item"][data-status="online"]`)
	onlineText, err := online.TextContent()
	require.NoError(t, err)
	assert.Contains(t, onlineText, "runner-linux-1")

	offline := browser.Page.Locator(`[data-testid="runner-item"][data-status="offline"]`)
	offlineCount, err := offline.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, offlineCount)
}

func TestAdminRunnersMocked(t *testing.T) {
	browser, auth := setupBrowser(t)
	mock := helpers.NewMockAPI(t, browser.Page)

	mock.StubJSON("GET", "**/api/v1/admin/runners", 200, map[string]any{
		"runners": []map[string]any{
			{"name": "mock-runner-1", "status": "online", "busy": true},
			{"name": "mock-runner-2", "status": "online", "busy": false},
			{"name": "mock-runner-3", "status": "offline", "busy": false},
		},
	})

	require.NoError(t, auth.LoginUser("", ""))
	require.NoError(t, browser.NavigateTo("/admin"))
	require.NoError(t, helpers.WaitForLoadingToComplete(browser.Page))

	runners := browser.Page.Locator(`[data-testid="runner-item"]`)
	count, err := runners.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, mock.Calls("GET", "**/api/v1/admin/runners"))
}

func TestAdminPageForbiddenForNonAdmin(t *testing.T) {
	browser, auth := setupBrowser(t)

	require.NoError(t, auth.LoginUser("dev@example.com", "DevPassword123!"))
	require.NoError(t, browser.NavigateTo("/admin"))

	body, err := browser.Page.Locator("body").TextContent()
	require.NoError(t, err)
	assert.Contains(t, body, "admin access required")
}
