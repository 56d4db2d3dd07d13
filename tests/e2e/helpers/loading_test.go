//go:build e2e

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForLoadingResolvesWhenNoMarkers(t *testing.T) {
	browser := newBrowser(t)
	auth := NewAuthHelper(browser)
	require.NoError(t, auth.LoginUser("", ""))

	require.NoError(t, WaitForLoadingToComplete(browser.Page))
	// Idempotent: a second call on a settled page must also resolve.
	require.NoError(t, WaitForLoadingToComplete(browser.Page))
}

func TestWaitForLoadingTimesOutOnPermanentMarker(t *testing.T) {
	browser := newBrowser(t)

	err := browser.Page.SetContent(
		`<div data-loading="true" class="loading">stuck forever</div>`)
	require.NoError(t, err)

	err = WaitForLoadingToComplete(browser.Page)
	require.Error(t, err, "a marker that never clears must fail the barrier")
	assert.Contains(t, err.Error(), "Timeout")
}

func TestWaitForLoadingClearsWithMarker(t *testing.T) {
	browser := newBrowser(t)

	// A marker that disappears mid-wait must unblock the barrier.
	err := browser.Page.SetContent(`
		<div id="box" data-loading="true">loading</div>
		<script>
			setTimeout(function () {
				document.getElementById('box').removeAttribute('data-loading');
			}, 500);
		</script>`)
	require.NoError(t, err)

	require.NoError(t, WaitForLoadingToComplete(browser.Page))
}
