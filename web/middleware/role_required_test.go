package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"regstats/database/model"
	"regstats/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func setupEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions("regstats", cookie.NewStore([]byte("test-secret"))))

	// Helper route to seed the session with a role
	engine.GET("/seed", func(c *gin.Context) {
		session.SetLoginUser(c, session.LoginUser{Name: "Ana", Role: c.Query("role")})
		c.Status(http.StatusOK)
	})

	protected := engine.Group("/")
	protected.Use(SessionRoleRequired(model.RoleAdministrator, model.RoleCollaborator))
	protected.GET("/secure", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func request(engine *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSessionRoleRequired(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		seed     bool
		expected int
	}{
		{name: "no session", expected: http.StatusForbidden},
		{name: "least privileged role", role: model.RoleVisitor, seed: true, expected: http.StatusForbidden},
		{name: "guest role", role: model.RoleGuest, seed: true, expected: http.StatusForbidden},
		{name: "administrator", role: model.RoleAdministrator, seed: true, expected: http.StatusOK},
		{name: "collaborator", role: model.RoleCollaborator, seed: true, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := setupEngine()

			var cookies []*http.Cookie
			if tt.seed {
				w := request(engine, "/seed?role="+tt.role, nil)
				cookies = w.Result().Cookies()
			}

			w := request(engine, "/secure", cookies)
			if w.Code != tt.expected {
				t.Errorf("status = %d, expected %d", w.Code, tt.expected)
			}
			if tt.expected == http.StatusForbidden && w.Body.String() != "No permission." {
				t.Errorf("body = %q, expected the permission message", w.Body.String())
			}
		})
	}
}
