package controller

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tradedesk/config"
	"tradedesk/database/model"
	"tradedesk/logger"
	"tradedesk/web/middleware"
	"tradedesk/web/service"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

const defaultDepositAddress = "BTC_ADDRESS_HERE"

func depositAddress(user *model.User) string {
	if user.Wallet.Address == "" {
		return defaultDepositAddress
	}
	return user.Wallet.Address
}

// WithdrawForm is the user-side withdrawal request body.
type WithdrawForm struct {
	Amount   string `form:"amount"`
	Wallet   string `form:"wallet"`
	Currency string `form:"currency"`
}

// UserController serves the authenticated user pages: dashboard, deposit,
// withdrawals and password change.
type UserController struct {
	BaseController

	userService       service.UserService
	withdrawalService service.WithdrawalService
	screenshotService service.ScreenshotService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)

	g.GET("/dashboard", a.dashboard)
	g.GET("/deposit", a.deposit)
	g.GET("/deposit/qr", a.depositQR)
	g.POST("/upload-screenshot", a.uploadScreenshot)
	g.GET("/withdraw", a.withdrawPage)
	g.POST("/withdraw", a.withdraw)
	g.GET("/change-password", a.changePasswordPage)
	g.POST("/change-password", a.changePassword)
}

// dashboard recomputes the trade aggregation on every view. No caching.
func (a *UserController) dashboard(c *gin.Context) {
	user, err := a.userService.GetUserFull(middleware.GetContextUser(c).Id)
	if err != nil {
		logger.Warning("dashboard error:", err)
		c.String(http.StatusInternalServerError, "Dashboard failed.")
		return
	}

	stats := service.ComputeDashboardStats(user.Trades, time.Now())
	html(c, "dashboard.html", "Dashboard", gin.H{"user": user, "stats": stats})
}

func (a *UserController) deposit(c *gin.Context) {
	user, err := a.userService.GetUserFull(middleware.GetContextUser(c).Id)
	if err != nil {
		logger.Warning("deposit page error:", err)
		c.String(http.StatusInternalServerError, "Failed to load deposit page.")
		return
	}
	html(c, "deposit.html", "Deposit", gin.H{"user": user, "btcAddr": depositAddress(user)})
}

// depositQR renders the user's deposit address as a PNG QR code.
func (a *UserController) depositQR(c *gin.Context) {
	addr := depositAddress(middleware.GetContextUser(c))

	png, err := qrcode.Encode(addr, qrcode.Medium, 256)
	if err != nil {
		logger.Warning("qr encode failed:", err)
		c.String(http.StatusInternalServerError, "Failed to render QR code.")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// uploadScreenshot accepts one image, validates its extension against the
// allow-list, stores the file under the upload folder and appends a reference
// to the user's screenshot list.
func (a *UserController) uploadScreenshot(c *gin.Context) {
	user := middleware.GetContextUser(c)
	addr := depositAddress(user)

	file, err := c.FormFile("screenshot")
	if err != nil {
		html(c, "deposit.html", "Deposit", gin.H{"btcAddr": addr, "message": "No file uploaded!"})
		return
	}

	if err := a.screenshotService.ValidateExtension(file.Filename); err != nil {
		html(c, "deposit.html", "Deposit", gin.H{"btcAddr": addr, "message": "Only image files are allowed!"})
		return
	}

	uploadDir := config.GetUploadFolder()
	if err := os.MkdirAll(uploadDir, 0o750); err != nil {
		logger.Error("upload dir error:", err)
		c.String(http.StatusInternalServerError, "Upload failed.")
		return
	}

	name := a.screenshotService.StoredFilename(user.Id, file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir, name)); err != nil {
		logger.Error("upload error:", err)
		c.String(http.StatusInternalServerError, "Upload failed.")
		return
	}

	if _, err := a.screenshotService.AddScreenshot(user.Id, "/uploads/screenshots/"+name); err != nil {
		logger.Error("screenshot save error:", err)
		c.String(http.StatusInternalServerError, "Upload failed.")
		return
	}

	if full, err := a.userService.GetUserFull(user.Id); err == nil {
		user = full
	}
	html(c, "deposit.html", "Deposit", gin.H{"user": user, "btcAddr": addr, "message": "Screenshot uploaded successfully!"})
}

func (a *UserController) withdrawPage(c *gin.Context) {
	user := middleware.GetContextUser(c)
	withdrawals, err := a.withdrawalService.ListForUser(user.Id)
	if err != nil {
		logger.Warning("withdraw page error:", err)
		c.String(http.StatusInternalServerError, "Withdrawal page failed.")
		return
	}
	html(c, "withdraw.html", "Withdraw", gin.H{"withdrawals": withdrawals})
}

// withdraw appends a pending entry and debits the balance when the amount
// does not exceed it.
func (a *UserController) withdraw(c *gin.Context) {
	user := middleware.GetContextUser(c)

	var form WithdrawForm
	_ = c.ShouldBind(&form)

	amount, err := strconv.ParseFloat(form.Amount, 64)
	if err != nil || amount <= 0 {
		c.String(http.StatusBadRequest, "Invalid amount")
		return
	}

	_, err = a.withdrawalService.RequestWithdrawal(user.Id, amount, form.Wallet, form.Currency)
	if errors.Is(err, service.ErrInsufficientBalance) {
		c.String(http.StatusBadRequest, "Insufficient balance")
		return
	}
	if err != nil {
		logger.Warning("withdraw error:", err)
		c.String(http.StatusInternalServerError, "Withdrawal failed.")
		return
	}

	c.Redirect(http.StatusFound, "/withdraw")
}

func (a *UserController) changePasswordPage(c *gin.Context) {
	html(c, "change-password.html", "Change Password", nil)
}

func (a *UserController) changePassword(c *gin.Context) {
	user := middleware.GetContextUser(c)
	oldPassword := c.PostForm("oldPassword")
	newPassword := c.PostForm("newPassword")

	err := a.userService.ChangePassword(user.Id, oldPassword, newPassword)
	switch {
	case errors.Is(err, service.ErrIncorrectPassword):
		html(c, "change-password.html", "Change Password", gin.H{"message": "Old password is incorrect"})
	case err != nil:
		logger.Warning("change password error:", err)
		html(c, "change-password.html", "Change Password", gin.H{"message": "Something went wrong. Try again."})
	default:
		html(c, "change-password.html", "Change Password", gin.H{"message": "Password changed successfully!"})
	}
}
