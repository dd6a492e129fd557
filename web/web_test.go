package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"tradedesk/database"
	"tradedesk/database/model"
	"tradedesk/logger"
	"tradedesk/web/service"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	os.Setenv("TD_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)

	dbPath := "webtest.db"
	os.Remove(dbPath)
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		db, _ := database.GetDB().DB()
		db.Close()
		os.Remove(dbPath)
	})

	engine, err := NewServer().initRouter()
	require.NoError(t, err)
	return engine
}

func postForm(engine *gin.Engine, target string, form url.Values, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func get(engine *gin.Engine, target string, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine, identifier, password string) (cookie, location string) {
	t.Helper()
	w := postForm(engine, "/auth/login", url.Values{
		"identifier": {identifier},
		"password":   {password},
	}, "")
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == "tradedesk" {
			cookie = c.Name + "=" + c.Value
		}
	}
	require.NotEmpty(t, cookie)
	return cookie, w.Header().Get("Location")
}

func seedAdmin(t *testing.T) *model.User {
	t.Helper()
	userService := service.UserService{}
	admin, err := userService.Register("root", "root@example.com", "adminpass")
	require.NoError(t, err)
	err = database.GetDB().Model(model.User{}).
		Where("id = ?", admin.Id).
		Update("role", model.RoleAdmin).
		Error
	require.NoError(t, err)
	return admin
}

func TestRegisterMismatchedConfirmation(t *testing.T) {
	engine := setupEngine(t)

	w := postForm(engine, "/auth/register", url.Values{
		"username":        {"alice"},
		"email":           {"alice@example.com"},
		"password":        {"secret123"},
		"confirmPassword": {"different"},
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match.")

	var count int64
	database.GetDB().Model(model.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLoginRedirectsByRole(t *testing.T) {
	engine := setupEngine(t)

	seedAdmin(t)
	userService := service.UserService{}
	_, err := userService.Register("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, location := login(t, engine, "root", "adminpass")
	assert.Equal(t, "/admin/dashboard", location)

	_, location = login(t, engine, "alice@example.com", "secret123")
	assert.Equal(t, "/dashboard", location)
}

func TestAuthGateRedirectsAnonymous(t *testing.T) {
	engine := setupEngine(t)

	for _, target := range []string{"/dashboard", "/withdraw", "/admin/dashboard"} {
		w := get(engine, target, "")
		assert.Equal(t, http.StatusFound, w.Code, target)
		assert.Equal(t, "/auth/login", w.Header().Get("Location"), target)
	}
}

func TestAdminGateRejectsNonAdmin(t *testing.T) {
	engine := setupEngine(t)

	userService := service.UserService{}
	_, err := userService.Register("alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	cookie, _ := login(t, engine, "alice", "secret123")

	for _, target := range []string{"/admin/dashboard", "/admin/user/1", "/admin/screenshots"} {
		w := get(engine, target, cookie)
		assert.Equal(t, http.StatusForbidden, w.Code, target)
		assert.Equal(t, "Access denied. Admins only.", w.Body.String(), target)
	}
}

func TestAdminCanViewUsers(t *testing.T) {
	engine := setupEngine(t)

	seedAdmin(t)
	userService := service.UserService{}
	_, err := userService.Register("alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	cookie, _ := login(t, engine, "root", "adminpass")

	w := get(engine, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	w = get(engine, "/admin/user/999", cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", w.Body.String())
}

func TestLogoutClearsSession(t *testing.T) {
	engine := setupEngine(t)

	userService := service.UserService{}
	_, err := userService.Register("alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	cookie, _ := login(t, engine, "alice", "secret123")

	w := get(engine, "/auth/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// The response expires the session cookie.
	expired := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "tradedesk" && c.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired)
}
