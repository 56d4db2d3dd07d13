package forge

import (
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleLoginPage(c *gin.Context) {
	if s.sessionUser(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	renderPage(c, "Sign in", loginTemplate, nil)
}

func (s *Server) handleRegisterPage(c *gin.Context) {
	renderPage(c, "Register", registerTemplate, nil)
}

func (s *Server) handleDashboardPage(c *gin.Context) {
	u := s.sessionUser(c)
	renderPage(c, "Dashboard", dashboardTemplate, pongo2.Context{
		"user": u.Username,
	})
}

func (s *Server) handleRepoPage(c *gin.Context) {
	u := s.sessionUser(c)
	repo := s.store.Repository(c.Param("owner"), c.Param("name"))
	if repo == nil {
		c.String(http.StatusNotFound, "repository not found")
		return
	}
	readme, err := RenderReadme(repo.Readme)
	if err != nil {
		c.String(http.StatusInternalServerError, "readme rendering failed: %v", err)
		return
	}
	renderPage(c, repo.FullName(), repoTemplate, pongo2.Context{
		"user":        u.Username,
		"owner":       repo.Owner,
		"name":        repo.Name,
		"description": repo.Description,
		"stars":       repo.Stars,
		"forks":       repo.Forks,
		"private":     repo.Private,
		"readme":      readme,
	})
}

func (s *Server) repoListPage(title string, tmpl *pongo2.Template) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := s.sessionUser(c)
		owner, name := c.Param("owner"), c.Param("name")
		if s.store.Repository(owner, name) == nil {
			c.String(http.StatusNotFound, "repository not found")
			return
		}
		renderPage(c, title, tmpl, pongo2.Context{
			"user":  u.Username,
			"owner": owner,
			"name":  name,
		})
	}
}

func (s *Server) handleNotificationsPage(c *gin.Context) {
	u := s.sessionUser(c)
	renderPage(c, "Notifications", notificationsTemplate, pongo2.Context{"user": u.Username})
}

func (s *Server) handleSearchPage(c *gin.Context) {
	u := s.sessionUser(c)
	renderPage(c, "Search", searchTemplate, pongo2.Context{"user": u.Username})
}

func (s *Server) handleAdminPage(c *gin.Context) {
	u := s.sessionUser(c)
	if !u.IsAdmin {
		c.String(http.StatusForbidden, "admin access required")
		return
	}
	renderPage(c, "Administration", adminTemplate, pongo2.Context{"user": u.Username})
}

func (s *Server) handleSecurityPage(c *gin.Context) {
	u := s.sessionUser(c)
	renderPage(c, "Security", securityTemplate, pongo2.Context{"user": u.Username})
}
