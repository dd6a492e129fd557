package controller

import (
	"errors"
	"net/http"

	"tradedesk/logger"
	"tradedesk/web/service"
	"tradedesk/web/session"

	"github.com/gin-gonic/gin"
)

// RegisterForm is the registration request body.
type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// LoginForm accepts a username or an email as identifier.
type LoginForm struct {
	Identifier string `form:"identifier"`
	Password   string `form:"password"`
}

// ResetForm is the new-password submission on the reset page.
type ResetForm struct {
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// AuthController handles registration, login/logout, password reset and the
// admin bootstrap endpoint.
type AuthController struct {
	BaseController

	userService service.UserService
	authService service.AuthService
}

func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/auth")

	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
	g.GET("/forgot", a.forgotPage)
	g.POST("/forgot", a.forgot)
	g.GET("/reset/:token", a.resetPage)
	g.POST("/reset/:token", a.reset)
	g.GET("/init-admin", a.initAdmin)
}

func emptyOld() gin.H {
	return gin.H{"username": "", "email": ""}
}

func (a *AuthController) registerPage(c *gin.Context) {
	html(c, "register.html", "Register", gin.H{"old": emptyOld()})
}

func (a *AuthController) register(c *gin.Context) {
	var form RegisterForm
	_ = c.ShouldBind(&form)
	old := gin.H{"username": form.Username, "email": form.Email}

	if form.Username == "" || form.Email == "" || form.Password == "" || form.ConfirmPassword == "" {
		html(c, "register.html", "Register", gin.H{"error": "All fields are required.", "old": old})
		return
	}
	if form.Password != form.ConfirmPassword {
		html(c, "register.html", "Register", gin.H{"error": "Passwords do not match.", "old": old})
		return
	}

	_, err := a.userService.Register(form.Username, form.Email, form.Password)
	if errors.Is(err, service.ErrUserExists) {
		html(c, "register.html", "Register", gin.H{"error": "Username or email already exists.", "old": old})
		return
	}
	if err != nil {
		logger.Warning("registration failed:", err)
		html(c, "register.html", "Register", gin.H{"error": "Something went wrong. Try again later.", "old": old})
		return
	}

	html(c, "register.html", "Register", gin.H{"success": "Registration successful! You can now log in.", "old": emptyOld()})
}

func (a *AuthController) loginPage(c *gin.Context) {
	html(c, "login.html", "Login", nil)
}

// login authenticates and redirects by role: admins to the admin dashboard,
// everyone else to the user dashboard.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	_ = c.ShouldBind(&form)

	if form.Identifier == "" || form.Password == "" {
		html(c, "login.html", "Login", gin.H{"error": "Both fields are required."})
		return
	}

	user, err := a.userService.CheckUser(form.Identifier, form.Password)
	switch {
	case errors.Is(err, service.ErrNoUser):
		html(c, "login.html", "Login", gin.H{"error": "No user found with that username or email."})
		return
	case errors.Is(err, service.ErrIncorrectPassword):
		logger.Warningf("wrong password for %q, IP %q", form.Identifier, getRemoteIp(c))
		html(c, "login.html", "Login", gin.H{"error": "Incorrect password."})
		return
	case err != nil:
		logger.Warning("login failed:", err)
		html(c, "login.html", "Login", gin.H{"error": "Login failed. Please try again later."})
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		html(c, "login.html", "Login", gin.H{"error": "Login failed. Please try again later."})
		return
	}

	logger.Infof("%s logged in successfully, IP %s", user.Username, getRemoteIp(c))
	if user.IsAdmin() {
		c.Redirect(http.StatusFound, "/admin/dashboard")
	} else {
		c.Redirect(http.StatusFound, "/dashboard")
	}
}

// logout destroys the session unconditionally and goes home.
func (a *AuthController) logout(c *gin.Context) {
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (a *AuthController) forgotPage(c *gin.Context) {
	html(c, "forgot.html", "Forgot Password", nil)
}

func (a *AuthController) forgot(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		html(c, "forgot.html", "Forgot Password", gin.H{"error": "Please enter your email."})
		return
	}

	err := a.authService.RequestPasswordReset(email)
	switch {
	case errors.Is(err, service.ErrNoUser):
		html(c, "forgot.html", "Forgot Password", gin.H{"error": "No user found with that email."})
	case err != nil:
		logger.Warning("forgot password failed:", err)
		html(c, "forgot.html", "Forgot Password", gin.H{"error": "Something went wrong."})
	default:
		html(c, "forgot.html", "Forgot Password", gin.H{"success": "A password reset link has been sent to your email."})
	}
}

func (a *AuthController) resetPage(c *gin.Context) {
	token := c.Param("token")
	if _, err := a.authService.GetUserByResetToken(token); err != nil {
		c.String(http.StatusOK, "Invalid or expired token.")
		return
	}
	html(c, "reset.html", "Reset Password", gin.H{"token": token})
}

func (a *AuthController) reset(c *gin.Context) {
	token := c.Param("token")

	var form ResetForm
	_ = c.ShouldBind(&form)
	if form.Password == "" || form.ConfirmPassword == "" {
		html(c, "reset.html", "Reset Password", gin.H{"error": "All fields are required.", "token": token})
		return
	}
	if form.Password != form.ConfirmPassword {
		html(c, "reset.html", "Reset Password", gin.H{"error": "Passwords do not match.", "token": token})
		return
	}

	err := a.authService.ResetPassword(token, form.Password)
	if errors.Is(err, service.ErrInvalidResetToken) {
		c.String(http.StatusOK, "Invalid or expired token.")
		return
	}
	if err != nil {
		logger.Warning("password reset failed:", err)
		c.String(http.StatusInternalServerError, "Error resetting password.")
		return
	}

	html(c, "login.html", "Login", gin.H{"success": "Password reset successful! You can now log in."})
}

// initAdmin creates the bootstrap admin from configured credentials if no
// account with the configured admin email exists.
func (a *AuthController) initAdmin(c *gin.Context) {
	created, err := a.authService.InitAdmin()
	if err != nil {
		logger.Error("admin creation error:", err)
		c.String(http.StatusInternalServerError, "Failed to create admin.")
		return
	}
	if !created {
		c.String(http.StatusOK, "Admin already exists.")
		return
	}
	c.String(http.StatusOK, "Admin created successfully.")
}
