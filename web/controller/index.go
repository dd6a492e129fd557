package controller

import (
	"github.com/gin-gonic/gin"
)

// IndexController serves the public landing page.
type IndexController struct {
	BaseController
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, "index.html", "Welcome", nil)
}
