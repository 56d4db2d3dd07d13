package helpers

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// loadingMarkerSelector matches every visual marker the UI uses while a
// page section is still fetching data.
const loadingMarkerSelector = `[data-loading="true"], .loading, .spinner`

// loadingBarrierTimeoutMS caps how long the barrier polls before giving up.
// A marker that never clears fails every dependent test instead of letting
// assertions race a half-rendered page.
const loadingBarrierTimeoutMS = 10_000

// WaitForLoadingToComplete blocks until no loading markers remain in the
// DOM. It resolves immediately when none are present, so calling it twice is
// safe; it returns a timeout error when a marker outlives the ceiling.
func WaitForLoadingToComplete(page playwright.Page) error {
	script := fmt.Sprintf(
		`() => document.querySelectorAll(%q).length === 0`,
		loadingMarkerSelector,
	)
	_, err := page.WaitForFunction(script, nil, playwright.PageWaitForFunctionOptions{
		Timeout: playwright.Float(loadingBarrierTimeoutMS),
	})
	if err != nil {
		return fmt.Errorf("loading indicators did not clear: %w", err)
	}
	return nil
}
