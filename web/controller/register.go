package controller

import (
	"errors"
	"net/http"
	"strings"

	"regstats/database/model"
	"regstats/logger"
	"regstats/util/validation"
	"regstats/web/entity"
	"regstats/web/service"
	"regstats/web/session"

	"github.com/gin-gonic/gin"
)

var roleChoices = []string{
	model.RoleAdministrator,
	model.RoleUser,
	model.RoleModerator,
	model.RoleGuest,
	model.RoleSuperUser,
	model.RoleEditor,
	model.RoleCollaborator,
	model.RoleVisitor,
}

// RegisterController handles the CSRF-protected registration form.
type RegisterController struct {
	userService service.UserService
}

func NewRegisterController(g *gin.RouterGroup) *RegisterController {
	a := &RegisterController{}
	a.initRouter(g)
	return a
}

func (a *RegisterController) initRouter(g *gin.RouterGroup) {
	g.GET("/register", a.show)
	g.POST("/register", a.submit)
}

func (a *RegisterController) show(c *gin.Context) {
	a.renderForm(c, &entity.RegisterForm{}, "")
}

// renderForm re-renders the registration form with a fresh token,
// preserving already entered values.
func (a *RegisterController) renderForm(c *gin.Context, form *entity.RegisterForm, errMsg string) {
	token := session.IssueCsrfToken(c)
	html(c, "register.html", "Register", gin.H{
		"csrf_token": token,
		"error":      errMsg,
		"name":       form.Name,
		"email":      form.Email,
		"role":       form.Role,
		"roles":      roleChoices,
	})
}

func (a *RegisterController) submit(c *gin.Context) {
	var form entity.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		a.renderForm(c, &entity.RegisterForm{}, "Invalid request.")
		return
	}

	// The token is consumed before anything else is looked at, and the
	// message never says whether it was missing or mismatched.
	if !session.ValidateCsrfToken(c, form.Csrf) {
		logger.Warningf("registration rejected, bad csrf token, IP: %s", getRemoteIp(c))
		a.renderForm(c, &form, "Invalid request.")
		return
	}

	if err := validation.CheckRequired(form.Fields(), []string{"name", "email", "role"}); err != nil {
		a.renderForm(c, &form, "All fields are required.")
		return
	}
	if err := validation.CheckEmail(form.Email); err != nil {
		a.renderForm(c, &form, "Enter a valid email address.")
		return
	}
	if err := validation.CheckPasswordPair(form.Password, form.Confirm); err != nil {
		a.renderForm(c, &form, "Passwords do not match.")
		return
	}

	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	role := strings.TrimSpace(form.Role)

	user, err := a.userService.CreateUser(name, email, role, form.Password)
	if errors.Is(err, service.ErrDuplicateEmail) {
		a.renderForm(c, &form, "This email is already registered.")
		return
	}
	if err != nil {
		logger.Error("create user err:", err)
		a.renderForm(c, &form, "Something went wrong, try again.")
		return
	}

	logger.Infof("registered user %q with role %q, IP: %s", user.Name, user.Role, getRemoteIp(c))
	c.Redirect(http.StatusSeeOther, "/statistics")
}
