package forge

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Options{SessionSecret: []byte("forge-test-secret")})
}

func doJSON(s *Server, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

// login authenticates the seeded admin account and returns the session cookie.
func login(t *testing.T, s *Server) *http.Cookie {
	t.Helper()
	w := doJSON(s, http.MethodPost, "/api/auth/login",
		`{"email":"test@example.com","password":"TestPassword123!"}`)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func TestLoginSetsSessionCookie(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(s, http.MethodPost, "/api/auth/login",
		`{"email":"test@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	body := `{"full_name":"Dup User","username":"dupuser","email":"test@example.com","password":"Password123!"}`
	w := doJSON(s, http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already registered")
}

func TestRegisterThenLogin(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(s, http.MethodPost, "/api/auth/register",
		`{"full_name":"New User","username":"newuser","email":"new@example.com","password":"NewPassword123!"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(s, http.MethodPost, "/api/auth/login",
		`{"email":"new@example.com","password":"NewPassword123!"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRequiresSession(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(s, http.MethodGet, "/api/v1/repositories", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPagesRedirectToLogin(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(s, http.MethodGet, "/dashboard", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestListRepositoriesIncludesRelativeTime(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s)

	w := doJSON(s, http.MethodGet, "/api/v1/repositories", "", c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Repositories []struct {
			Owner      string `json:"owner"`
			Name       string `json:"name"`
			UpdatedAgo string `json:"updated_ago"`
		} `json:"repositories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Repositories)
	for _, r := range resp.Repositories {
		assert.Contains(t, r.UpdatedAgo, "ago", "%s/%s should carry a relative timestamp", r.Owner, r.Name)
	}
}

func TestSearchSpansResultTypes(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s)

	w := doJSON(s, http.MethodGet, "/api/v1/search?q=hello", "", c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello-world")

	w = doJSON(s, http.MethodGet, "/api/v1/search?q=zzz-no-match", "", c)
	require.Equal(t, http.StatusOK, w.Code)
	var resp SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Repositories)
	assert.Empty(t, resp.Issues)
	assert.Empty(t, resp.Users)
}

func TestMarkNotificationRead(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s)

	notifs := s.Store().Notifications(true)
	require.NotEmpty(t, notifs)
	id := notifs[0].ID

	w := doJSON(s, http.MethodPut, "/api/v1/notifications/"+id+"/read", "", c)
	assert.Equal(t, http.StatusOK, w.Code)

	remaining := s.Store().Notifications(true)
	for _, n := range remaining {
		assert.NotEqual(t, id, n.ID)
	}

	w = doJSON(s, http.MethodPut, "/api/v1/notifications/no-such-id/read", "", c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddKeyComputesFingerprint(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s)

	w := doJSON(s, http.MethodPost, "/api/v1/user/keys",
		`{"title":"ci key","key":"ssh-ed25519 AAAAC3NzaC1lZDI1NTE5AAAAIAfQeKaYkLC7tjbQe9zeq8KbFRbBVvVtSfNnkeCNRyXk ci@hub"}`, c)
	require.Equal(t, http.StatusCreated, w.Code)

	var key SSHKey
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &key))
	assert.Equal(t, "ci key", key.Title)
	assert.True(t, strings.HasPrefix(key.Fingerprint, "SHA256:"))
}

func TestAddKeyRejectsBlankFields(t *testing.T) {
	s := newTestServer(t)
	c := login(t, s)

	w := doJSON(s, http.MethodPost, "/api/v1/user/keys", `{"title":"  ","key":""}`, c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndpointsForbiddenForNonAdmin(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(s, http.MethodPost, "/api/auth/login",
		`{"email":"dev@example.com","password":"DevPassword123!"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	w = doJSON(s, http.MethodGet, "/api/v1/admin/users", "", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(s, http.MethodGet, "/api/v1/admin/runners", "", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRenderReadmeSanitizesHTML(t *testing.T) {
	html, err := RenderReadme("# Title\n\n<script>alert(1)</script>\n\nSome *text*.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<em>text</em>")
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "alert(1)")
}
