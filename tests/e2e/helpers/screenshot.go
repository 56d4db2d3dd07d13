package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotDir is where diagnostic captures land, named so CI can archive
// the whole directory.
const ScreenshotDir = "test-results/screenshots"

// TakeScreenshot writes a full-page capture keyed by name. The name is
// sanitized so subtest names with slashes stay inside ScreenshotDir. Disk
// or capture errors propagate to the caller.
func TakeScreenshot(page playwright.Page, name string) error {
	if err := os.MkdirAll(ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("creating screenshot directory: %w", err)
	}
	path := filepath.Join(ScreenshotDir, sanitizeName(name)+".png")
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return fmt.Errorf("capturing %s: %w", path, err)
	}
	return nil
}

func sanitizeName(name string) string {
	r := strings.NewReplacer("/", "_", " ", "_", "\\", "_", ":", "_")
	return r.Replace(name)
}
