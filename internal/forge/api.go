package forge

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xeonx/timeago"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	u := s.store.Authenticate(req.Email, req.Password)
	if u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	token, err := s.issueSession(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}
	c.SetCookie(SessionCookieName, token, int(sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"username": u.Username})
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}
	u := &User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}
	if !s.store.AddUser(u) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": u.Username})
}

func (s *Server) handleLogout(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// repositoryJSON adds the relative-time field the dashboard renders.
type repositoryJSON struct {
	*Repository
	UpdatedAgo string `json:"updated_ago"`
}

func (s *Server) handleListRepositories(c *gin.Context) {
	repos := s.store.Repositories()
	out := make([]repositoryJSON, 0, len(repos))
	for _, r := range repos {
		out = append(out, repositoryJSON{Repository: r, UpdatedAgo: timeago.English.Format(r.UpdatedAt)})
	}
	c.JSON(http.StatusOK, gin.H{"repositories": out})
}

func (s *Server) handleGetRepository(c *gin.Context) {
	repo := s.store.Repository(c.Param("owner"), c.Param("name"))
	if repo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "repository not found"})
		return
	}
	c.JSON(http.StatusOK, repositoryJSON{Repository: repo, UpdatedAgo: timeago.English.Format(repo.UpdatedAt)})
}

func (s *Server) handleListPulls(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pulls": s.store.Pulls(c.Param("owner"), c.Param("name"))})
}

func (s *Server) handleListIssues(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"issues": s.store.Issues(c.Param("owner"), c.Param("name"))})
}

func (s *Server) handleListRuns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"runs": s.store.Runs(c.Param("owner"), c.Param("name"))})
}

func (s *Server) handleListRunners(c *gin.Context) {
	u := currentUser(c)
	if u == nil || !u.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runners": s.store.Runners()})
}

func (s *Server) handleListUsers(c *gin.Context) {
	u := currentUser(c)
	if u == nil || !u.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": s.store.Users()})
}

func (s *Server) handleListNotifications(c *gin.Context) {
	unreadOnly := c.Query("status") == "unread"
	c.JSON(http.StatusOK, gin.H{"notifications": s.store.Notifications(unreadOnly)})
}

func (s *Server) handleMarkNotificationRead(c *gin.Context) {
	if !s.store.MarkNotificationRead(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleSearch(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Search(c.Query("q")))
}

func (s *Server) handleListKeys(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": s.store.Keys()})
}

type addKeyRequest struct {
	Title string `json:"title"`
	Key   string `json:"key"`
}

func (s *Server) handleAddKey(c *gin.Context) {
	var req addKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Key) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and key are required"})
		return
	}
	k := s.store.AddKey(req.Title, fingerprint(req.Key))
	c.JSON(http.StatusCreated, k)
}
