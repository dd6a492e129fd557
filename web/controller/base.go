// Package controller provides the HTTP handlers of the tradedesk panel:
// authentication, the user-facing pages and the admin surface.
package controller

import (
	"net/http"

	"tradedesk/web/middleware"
	"tradedesk/web/service"
	"tradedesk/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authorization gates shared by all controllers.
type BaseController struct {
	userService service.UserService
}

// checkLogin verifies that a user was resolved for this request. If the
// identity middleware did not populate the request it falls back to resolving
// from the session directly. Anonymous visitors are redirected to the login
// page; AJAX callers get a 401 instead.
func (a *BaseController) checkLogin(c *gin.Context) {
	if middleware.GetContextUser(c) == nil {
		if id := session.GetLoginUserId(c); id != 0 {
			if user, err := a.userService.GetUser(id); err == nil {
				middleware.SetContextUser(c, user)
				c.Next()
				return
			}
		}
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, "Please log in again.")
		} else {
			c.Redirect(http.StatusFound, "/auth/login")
		}
		c.Abort()
		return
	}
	c.Next()
}

// checkAdmin requires the resolved user's role to be admin. The response is a
// fixed 403 regardless of who asks.
func (a *BaseController) checkAdmin(c *gin.Context) {
	user := middleware.GetContextUser(c)
	if user == nil || !user.IsAdmin() {
		c.String(http.StatusForbidden, "Access denied. Admins only.")
		c.Abort()
		return
	}
	c.Next()
}
