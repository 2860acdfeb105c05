// Package controller provides the HTTP handlers of the panel: the home
// page, the CSRF-protected registration and login forms, and the role
// statistics view.
package controller

import (
	"github.com/gin-gonic/gin"
)

// IndexController serves the static home page.
type IndexController struct{}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, "index.html", "Home", nil)
}
