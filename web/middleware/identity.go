package middleware

import (
	"tradedesk/database/model"
	"tradedesk/logger"
	"tradedesk/web/service"
	"tradedesk/web/session"

	"github.com/gin-gonic/gin"
)

const ctxUser = "user"

// SessionIdentity resolves the session cookie to a full user record on every
// request, anonymous ones included. Lookup failures degrade to an anonymous
// request instead of failing it.
func SessionIdentity() gin.HandlerFunc {
	userService := service.UserService{}
	return func(c *gin.Context) {
		if id := session.GetLoginUserId(c); id != 0 {
			user, err := userService.GetUser(id)
			if err != nil {
				if !service.IsUserNotFound(err) {
					logger.Warning("session lookup failed:", err)
				}
			} else {
				c.Set(ctxUser, user)
			}
		}
		c.Next()
	}
}

// GetContextUser returns the user resolved for this request, or nil when
// anonymous.
func GetContextUser(c *gin.Context) *model.User {
	if obj, exists := c.Get(ctxUser); exists {
		if user, ok := obj.(*model.User); ok {
			return user
		}
	}
	return nil
}

// SetContextUser attaches a resolved user to the request. Exposed for the
// authenticated gate's fallback path and for tests.
func SetContextUser(c *gin.Context, user *model.User) {
	c.Set(ctxUser, user)
}
