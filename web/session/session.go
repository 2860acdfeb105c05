// Package session wraps all access to the per-client cookie session: the
// logged-in user and the one-shot CSRF token.
package session

import (
	"crypto/subtle"
	"encoding/gob"

	"regstats/logger"
	"regstats/util/random"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserKey = "LOGIN_USER"
	csrfTokenKey = "CSRF_TOKEN"

	csrfTokenLength = 32
)

// LoginUser is the session-resident identity set after a successful login.
type LoginUser struct {
	Name string
	Role string
}

func init() {
	gob.Register(LoginUser{})
}

func SetLoginUser(c *gin.Context, user LoginUser) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, user)
	return s.Save()
}

func GetLoginUser(c *gin.Context) *LoginUser {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if user, ok := obj.(LoginUser); ok {
			return &user
		}
	}
	return nil
}

// HasPermission reports whether the session holds a logged-in user whose
// role is one of the given roles.
func HasPermission(c *gin.Context, roles ...string) bool {
	user := GetLoginUser(c)
	if user == nil {
		return false
	}
	for _, role := range roles {
		if user.Role == role {
			return true
		}
	}
	return false
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// IssueCsrfToken generates a fresh token and stores it as the session's
// single outstanding token, replacing any previous one.
func IssueCsrfToken(c *gin.Context) string {
	token := random.Seq(csrfTokenLength)
	s := sessions.Default(c)
	s.Set(csrfTokenKey, token)
	if err := s.Save(); err != nil {
		logger.Warning("save csrf token err:", err)
	}
	return token
}

// ValidateCsrfToken removes the session's stored token and compares it with
// the submitted value in constant time. The stored token is consumed whether
// or not the comparison succeeds, a token validates at most once.
func ValidateCsrfToken(c *gin.Context, submitted string) bool {
	s := sessions.Default(c)
	obj := s.Get(csrfTokenKey)
	s.Delete(csrfTokenKey)
	if err := s.Save(); err != nil {
		logger.Warning("consume csrf token err:", err)
	}

	stored, ok := obj.(string)
	if !ok || stored == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
