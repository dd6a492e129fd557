// Package session wraps the cookie session: one opaque cookie carrying the
// user id and an admin flag derived from the role at login time.
package session

import (
	"tradedesk/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserId = "LOGIN_USER_ID"
	loginAdmin  = "LOGIN_IS_ADMIN"

	// CookieName is the session cookie written by the store.
	CookieName = "tradedesk"
)

// SetLoginUser records the user's identity in the session. The admin flag is a
// cached view of the role, never independent state.
func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserId, user.Id)
	s.Set(loginAdmin, user.IsAdmin())
	return s.Save()
}

// GetLoginUserId returns the session's user id, or 0 when anonymous.
func GetLoginUserId(c *gin.Context) uint {
	s := sessions.Default(c)
	if obj := s.Get(loginUserId); obj != nil {
		if id, ok := obj.(uint); ok {
			return id
		}
	}
	return 0
}

// IsAdmin returns the cached admin flag from the session.
func IsAdmin(c *gin.Context) bool {
	s := sessions.Default(c)
	if obj := s.Get(loginAdmin); obj != nil {
		if admin, ok := obj.(bool); ok {
			return admin
		}
	}
	return false
}

// ClearSession drops all session state and expires the cookie.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return nil
}
