package helpers

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// MockAPI is a fixture-scoped stub registry for one page. Stubs are stored
// per test and unrouted automatically on cleanup, so a test's fixtures can
// never leak into another test. Requests no stub matches fall through to the
// real target; an unexpected live call is a spec-authoring bug, not a
// harness error.
type MockAPI struct {
	t     *testing.T
	page  playwright.Page
	mu    sync.Mutex
	calls map[string]int
}

// NewMockAPI binds a stub registry to the given page for the current test.
func NewMockAPI(t *testing.T, page playwright.Page) *MockAPI {
	t.Helper()
	return &MockAPI{
		t:     t,
		page:  page,
		calls: make(map[string]int),
	}
}

// StubJSON intercepts requests matching the URL glob and HTTP method and
// fulfills them with the given status and JSON-encoded body.
func (m *MockAPI) StubJSON(method, pattern string, status int, body any) {
	m.t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		m.t.Fatalf("encoding stub body for %s %s: %v", method, pattern, err)
	}
	m.stub(method, pattern, status, "application/json", encoded)
}

// StubError is StubJSON for the forge's error payload shape.
func (m *MockAPI) StubError(method, pattern string, status int, message string) {
	m.t.Helper()
	m.StubJSON(method, pattern, status, map[string]string{"error": message})
}

// Stub intercepts matching requests and fulfills them with a raw body.
func (m *MockAPI) Stub(method, pattern string, status int, contentType string, body []byte) {
	m.t.Helper()
	m.stub(method, pattern, status, contentType, body)
}

func (m *MockAPI) stub(method, pattern string, status int, contentType string, body []byte) {
	m.t.Helper()
	key := stubKey(method, pattern)
	err := m.page.Route(pattern, func(route playwright.Route) {
		if !strings.EqualFold(route.Request().Method(), method) {
			// Let a stub for another verb on the same pattern take over.
			if err := route.Fallback(); err != nil {
				m.t.Logf("route fallback for %s failed: %v", pattern, err)
			}
			return
		}
		m.mu.Lock()
		m.calls[key]++
		m.mu.Unlock()
		if err := route.Fulfill(playwright.RouteFulfillOptions{
			Status:      playwright.Int(status),
			ContentType: playwright.String(contentType),
			Body:        body,
		}); err != nil {
			m.t.Logf("fulfilling %s %s failed: %v", method, pattern, err)
		}
	})
	if err != nil {
		m.t.Fatalf("installing stub for %s %s: %v", method, pattern, err)
	}
	m.t.Cleanup(func() {
		_ = m.page.Unroute(pattern)
	})
}

// Calls reports how many requests a stub has fulfilled.
func (m *MockAPI) Calls(method, pattern string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[stubKey(method, pattern)]
}

func stubKey(method, pattern string) string {
	return strings.ToUpper(method) + " " + pattern
}
