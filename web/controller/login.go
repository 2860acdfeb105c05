package controller

import (
	"fmt"
	"net/http"
	"strings"

	"regstats/config"
	"regstats/logger"
	"regstats/util/validation"
	"regstats/web/entity"
	"regstats/web/service"
	"regstats/web/session"

	"github.com/gin-gonic/gin"
)

// LoginController handles the CSRF-protected login form and logout.
type LoginController struct {
	userService service.UserService
}

func NewLoginController(g *gin.RouterGroup) *LoginController {
	a := &LoginController{}
	a.initRouter(g)
	return a
}

func (a *LoginController) initRouter(g *gin.RouterGroup) {
	g.GET("/login", a.show)
	g.POST("/login", a.submit)
	g.GET("/logout", a.logout)
}

func (a *LoginController) show(c *gin.Context) {
	a.renderForm(c, &entity.LoginForm{}, "", "")
}

func (a *LoginController) renderForm(c *gin.Context, form *entity.LoginForm, errMsg string, message string) {
	token := session.IssueCsrfToken(c)
	html(c, "login.html", "Login", gin.H{
		"csrf_token": token,
		"error":      errMsg,
		"message":    message,
		"name":       form.Name,
		"email":      form.Email,
	})
}

func (a *LoginController) submit(c *gin.Context) {
	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderForm(c, &entity.LoginForm{}, "Invalid request.", "")
		return
	}

	if !session.ValidateCsrfToken(c, form.Csrf) {
		logger.Warningf("login rejected, bad csrf token, IP: %s", getRemoteIp(c))
		a.renderForm(c, &form, "Invalid request.", "")
		return
	}

	if err := validation.CheckRequired(form.Fields(), []string{"name", "email"}); err != nil {
		a.renderForm(c, &form, "All fields are required.", "")
		return
	}

	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)

	// Name and email must both match exactly. A miss stays generic so the
	// response never confirms which of the two values exists.
	user, err := a.userService.FindByNameAndEmail(name, email)
	if err != nil {
		logger.Error("login lookup err:", err)
		a.renderForm(c, &form, "Something went wrong, try again.", "")
		return
	}
	if user == nil {
		logger.Warningf("failed login for %q, IP: %s", name, getRemoteIp(c))
		a.renderForm(c, &form, "User not found. Check your details or register first.", "")
		return
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("set session max age err:", err)
	}
	if err := session.SetLoginUser(c, session.LoginUser{Name: user.Name, Role: user.Role}); err != nil {
		logger.Warning("save login session err:", err)
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Name, getRemoteIp(c))
	a.renderForm(c, &entity.LoginForm{}, "", fmt.Sprintf("Welcome, %s (%s)", user.Name, user.Role))
}

func (a *LoginController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Name)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("clear session err:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, "/")
}
