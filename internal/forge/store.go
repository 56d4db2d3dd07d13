package forge

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// User is an account on the fixture forge.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	IsAdmin  bool   `json:"is_admin"`
}

// Repository is a code repository owned by a user or org.
type Repository struct {
	ID            string    `json:"id"`
	Owner         string    `json:"owner"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DefaultBranch string    `json:"default_branch"`
	Private       bool      `json:"private"`
	Stars         int       `json:"stars_count"`
	Forks         int       `json:"forks_count"`
	OpenIssues    int       `json:"open_issues_count"`
	Readme        string    `json:"-"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FullName returns the owner/name path of the repository.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// PullRequest is an open or merged change proposal on a repository.
type PullRequest struct {
	ID         string    `json:"id"`
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	State      string    `json:"state"` // open, closed, merged
	BaseBranch string    `json:"base_branch"`
	HeadBranch string    `json:"head_branch"`
	Mergeable  bool      `json:"mergeable"`
	CreatedAt  time.Time `json:"created_at"`
}

// Issue is a tracked issue on a repository.
type Issue struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	State     string    `json:"state"` // open, closed
	Labels    []string  `json:"labels"`
	Comments  int       `json:"comments_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ActionRun is one CI workflow run.
type ActionRun struct {
	ID         string    `json:"id"`
	Number     int       `json:"number"`
	Workflow   string    `json:"workflow"`
	Branch     string    `json:"branch"`
	Event      string    `json:"event"`
	Status     string    `json:"status"`     // queued, running, completed
	Conclusion string    `json:"conclusion"` // success, failure, "" while running
	StartedAt  time.Time `json:"started_at"`
	LogLines   []string  `json:"-"`
}

// Runner is a registered Actions runner.
type Runner struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"` // online, offline
	Busy       bool      `json:"busy"`
	Labels     []string  `json:"labels"`
	LastOnline time.Time `json:"last_online"`
}

// Notification is an unread/read inbox entry.
type Notification struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Repository string    `json:"repository"`
	Type       string    `json:"type"` // issue, pull, ci
	Unread     bool      `json:"unread"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SSHKey is a public key registered on a user account.
type SSHKey struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store holds all fixture data for one forge instance. Safe for concurrent
// use; every Server owns its own Store so parallel test processes cannot
// observe each other's writes.
type Store struct {
	mu            sync.RWMutex
	users         map[string]*User // keyed by email
	repos         []*Repository
	pulls         map[string][]*PullRequest // keyed by owner/name
	issues        map[string][]*Issue
	runs          map[string][]*ActionRun
	runners       []*Runner
	notifications []*Notification
	keys          []*SSHKey
}

// NewStore returns a store populated with deterministic seed data.
func NewStore() *Store {
	s := &Store{
		users:  make(map[string]*User),
		pulls:  make(map[string][]*PullRequest),
		issues: make(map[string][]*Issue),
		runs:   make(map[string][]*ActionRun),
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	now := time.Now()

	s.users["test@example.com"] = &User{
		ID:       uuid.NewString(),
		Username: "testuser",
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "TestPassword123!",
		IsAdmin:  true,
	}
	s.users["dev@example.com"] = &User{
		ID:       uuid.NewString(),
		Username: "devuser",
		FullName: "Dev User",
		Email:    "dev@example.com",
		Password: "DevPassword123!",
	}

	s.repos = []*Repository{
		{
			ID:            uuid.NewString(),
			Owner:         "testuser",
			Name:          "hello-world",
			Description:   "A sample repository",
			DefaultBranch: "main",
			Stars:         42,
			Forks:         7,
			OpenIssues:    2,
			Readme:        "# Hello World\n\nA sample repository used by the fixture forge.\n",
			UpdatedAt:     now.Add(-2 * time.Hour),
		},
		{
			ID:            uuid.NewString(),
			Owner:         "testuser",
			Name:          "infra-tools",
			Description:   "Deployment tooling",
			DefaultBranch: "main",
			Private:       true,
			Stars:         3,
			OpenIssues:    1,
			Readme:        "# Infra Tools\n\nInternal deployment scripts.\n",
			UpdatedAt:     now.Add(-72 * time.Hour),
		},
	}

	s.pulls["testuser/hello-world"] = []*PullRequest{
		{ID: uuid.NewString(), Number: 12, Title: "Add CI pipeline", Author: "devuser",
			State: "open", BaseBranch: "main", HeadBranch: "feature/ci", Mergeable: true,
			CreatedAt: now.Add(-26 * time.Hour)},
		{ID: uuid.NewString(), Number: 11, Title: "Fix typo in docs", Author: "testuser",
			State: "merged", BaseBranch: "main", HeadBranch: "fix/docs",
			CreatedAt: now.Add(-96 * time.Hour)},
	}

	s.issues["testuser/hello-world"] = []*Issue{
		{ID: uuid.NewString(), Number: 8, Title: "Build fails on arm64", Author: "devuser",
			State: "open", Labels: []string{"bug", "ci"}, Comments: 4,
			CreatedAt: now.Add(-30 * time.Hour)},
		{ID: uuid.NewString(), Number: 5, Title: "Document release process", Author: "testuser",
			State: "closed", Labels: []string{"docs"}, Comments: 1,
			CreatedAt: now.Add(-200 * time.Hour)},
	}

	s.runs["testuser/hello-world"] = []*ActionRun{
		{ID: uuid.NewString(), Number: 34, Workflow: "build", Branch: "main", Event: "push",
			Status: "completed", Conclusion: "success", StartedAt: now.Add(-time.Hour),
			LogLines: []string{"checkout sources", "go build ./...", "go test ./...", "build succeeded"}},
		{ID: uuid.NewString(), Number: 33, Workflow: "build", Branch: "feature/ci", Event: "pull_request",
			Status: "completed", Conclusion: "failure", StartedAt: now.Add(-3 * time.Hour),
			LogLines: []string{"checkout sources", "go build ./...", "compile error in main.go"}},
	}

	s.runners = []*Runner{
		{ID: uuid.NewString(), Name: "runner-linux-1", Status: "online", Busy: false,
			Labels: []string{"linux", "amd64"}, LastOnline: now},
		{ID: uuid.NewString(), Name: "runner-linux-2", Status: "offline",
			Labels: []string{"linux", "arm64"}, LastOnline: now.Add(-48 * time.Hour)},
	}

	s.notifications = []*Notification{
		{ID: uuid.NewString(), Title: "Build fails on arm64", Repository: "testuser/hello-world",
			Type: "issue", Unread: true, UpdatedAt: now.Add(-time.Hour)},
		{ID: uuid.NewString(), Title: "Add CI pipeline", Repository: "testuser/hello-world",
			Type: "pull", Unread: true, UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: uuid.NewString(), Title: "build #33 failed", Repository: "testuser/hello-world",
			Type: "ci", Unread: false, UpdatedAt: now.Add(-3 * time.Hour)},
	}

	s.keys = []*SSHKey{
		{ID: uuid.NewString(), Title: "work laptop",
			Fingerprint: "SHA256:Jk3dyOBKd1cjcTYHlvJWJPwzIE1Zray8dK6R9yyRoTY",
			CreatedAt:   now.Add(-30 * 24 * time.Hour)},
	}
}

// Authenticate returns the user for the email/password pair, or nil.
func (s *Store) Authenticate(email, password string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok || u.Password != password {
		return nil
	}
	return u
}

// UserByEmail looks up a user by email.
func (s *Store) UserByEmail(email string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[email]
}

// AddUser registers a new account. Returns false if the email is taken.
func (s *Store) AddUser(u *User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Email]; exists {
		return false
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.Email] = u
	return true
}

// Users returns all accounts sorted by username.
func (s *Store) Users() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

// Repositories returns all repositories, most recently updated first.
func (s *Store) Repositories() []*Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Repository, len(s.repos))
	copy(out, s.repos)
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

// Repository looks up a repository by owner and name.
func (s *Store) Repository(owner, name string) *Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.repos {
		if r.Owner == owner && r.Name == name {
			return r
		}
	}
	return nil
}

// Pulls returns the pull requests of a repository.
func (s *Store) Pulls(owner, name string) []*PullRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*PullRequest(nil), s.pulls[owner+"/"+name]...)
}

// Issues returns the issues of a repository.
func (s *Store) Issues(owner, name string) []*Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Issue(nil), s.issues[owner+"/"+name]...)
}

// Runs returns the workflow runs of a repository, newest first.
func (s *Store) Runs(owner, name string) []*ActionRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*ActionRun(nil), s.runs[owner+"/"+name]...)
}

// Run looks up a single workflow run by ID.
func (s *Store) Run(owner, name, id string) *ActionRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.runs[owner+"/"+name] {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Runners returns the registered Actions runners.
func (s *Store) Runners() []*Runner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Runner(nil), s.runners...)
}

// Notifications returns the inbox, optionally unread entries only.
func (s *Store) Notifications(unreadOnly bool) []*Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if unreadOnly && !n.Unread {
			continue
		}
		out = append(out, n)
	}
	return out
}

// MarkNotificationRead flags one notification as read. Returns false when the
// ID is unknown.
func (s *Store) MarkNotificationRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id {
			n.Unread = false
			return true
		}
	}
	return false
}

// Keys returns the registered SSH keys.
func (s *Store) Keys() []*SSHKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*SSHKey(nil), s.keys...)
}

// AddKey registers an SSH key and returns it.
func (s *Store) AddKey(title, fingerprint string) *SSHKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := &SSHKey{
		ID:          uuid.NewString(),
		Title:       title,
		Fingerprint: fingerprint,
		CreatedAt:   time.Now(),
	}
	s.keys = append(s.keys, k)
	return k
}

// SearchResult groups the matches of a cross-entity search.
type SearchResult struct {
	Repositories []*Repository `json:"repositories"`
	Issues       []*Issue      `json:"issues"`
	Users        []*User       `json:"users"`
}

// Search matches repositories, issues and users by substring.
func (s *Store) Search(query string) *SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	res := &SearchResult{
		Repositories: []*Repository{},
		Issues:       []*Issue{},
		Users:        []*User{},
	}
	if q == "" {
		return res
	}
	for _, r := range s.repos {
		if strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Description), q) {
			res.Repositories = append(res.Repositories, r)
		}
	}
	for _, list := range s.issues {
		for _, is := range list {
			if strings.Contains(strings.ToLower(is.Title), q) {
				res.Issues = append(res.Issues, is)
			}
		}
	}
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.FullName), q) {
			res.Users = append(res.Users, u)
		}
	}
	sort.Slice(res.Users, func(i, j int) bool { return res.Users[i].Username < res.Users[j].Username })
	return res
}
