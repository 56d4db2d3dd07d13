// Package forge is a hermetic stand-in for the hub web application. It serves
// the pages and the /api/v1 surface the E2E specs drive, backed by an
// in-memory fixture store, so the suite runs without a deployed instance.
package forge

import (
	"crypto/rand"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server wires the fixture store, session handling and routes.
type Server struct {
	store         *Store
	engine        *gin.Engine
	sessionSecret []byte
}

// Options configures a fixture forge instance.
type Options struct {
	// SessionSecret signs session cookies. Random when empty.
	SessionSecret []byte
	// Store overrides the default seeded store.
	Store *Store
}

// New builds a fixture forge server.
func New(opts Options) *Server {
	secret := opts.SessionSecret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic("forge: could not generate session secret: " + err.Error())
		}
	}
	store := opts.Store
	if store == nil {
		store = NewStore()
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		store:         store,
		engine:        gin.New(),
		sessionSecret: secret,
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

// Store exposes the fixture data for direct seeding in tests.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the HTTP handler, for mounting on httptest.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/", func(c *gin.Context) {
		if s.sessionUser(c) != nil {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		c.Redirect(http.StatusFound, "/login")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public pages
	r.GET("/login", s.handleLoginPage)
	r.GET("/register", s.handleRegisterPage)

	// Auth API
	auth := r.Group("/api/auth")
	auth.POST("/login", s.handleLogin)
	auth.POST("/register", s.handleRegister)
	auth.POST("/logout", s.handleLogout)

	// Authenticated pages
	pages := r.Group("/", s.requirePage)
	pages.GET("/dashboard", s.handleDashboardPage)
	pages.GET("/notifications", s.handleNotificationsPage)
	pages.GET("/search", s.handleSearchPage)
	pages.GET("/admin", s.handleAdminPage)
	pages.GET("/settings/security", s.handleSecurityPage)
	pages.GET("/:owner/:name", s.handleRepoPage)
	pages.GET("/:owner/:name/pulls", s.repoListPage("Pull requests", pullsTemplate))
	pages.GET("/:owner/:name/issues", s.repoListPage("Issues", issuesTemplate))
	pages.GET("/:owner/:name/actions", s.repoListPage("Actions", actionsTemplate))

	// API v1
	api := r.Group("/api/v1", s.requireAPI)
	api.GET("/repositories", s.handleListRepositories)
	api.GET("/repositories/:owner/:name", s.handleGetRepository)
	api.GET("/repositories/:owner/:name/pulls", s.handleListPulls)
	api.GET("/repositories/:owner/:name/issues", s.handleListIssues)
	api.GET("/repositories/:owner/:name/actions/runs", s.handleListRuns)
	api.GET("/repositories/:owner/:name/actions/runs/:id/logs/ws", s.handleRunLogStream)
	api.GET("/notifications", s.handleListNotifications)
	api.PUT("/notifications/:id/read", s.handleMarkNotificationRead)
	api.GET("/search", s.handleSearch)
	api.GET("/admin/users", s.handleListUsers)
	api.GET("/admin/runners", s.handleListRunners)
	api.GET("/user/keys", s.handleListKeys)
	api.POST("/user/keys", s.handleAddKey)
}
