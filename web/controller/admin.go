package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"tradedesk/logger"
	"tradedesk/web/service"

	"github.com/gin-gonic/gin"
)

// TradeForm is the manual trade entry body. Empty or malformed numbers fall
// back to zero, matching how the panel has always treated them.
type TradeForm struct {
	Type   string `form:"type"`
	Profit string `form:"profit"`
	Loss   string `form:"loss"`
}

// AdminController serves the admin surface: user review, balance adjustment,
// withdrawal approval and manual trade injection.
type AdminController struct {
	BaseController

	adminService service.UserAdminService
}

func NewAdminController(g *gin.RouterGroup) *AdminController {
	a := &AdminController{}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/admin")
	g.Use(a.checkLogin)
	g.Use(a.checkAdmin)

	g.GET("/dashboard", a.dashboard)
	g.GET("/user/:id", a.user)
	g.GET("/screenshots", a.screenshots)
	g.POST("/user/:id/update-balance", a.updateBalance)
	g.POST("/user/:id/add-trade", a.addTrade)
	g.POST("/withdraw/:userId/:withdrawalId/approve", a.approveWithdrawal)
}

func (a *AdminController) dashboard(c *gin.Context) {
	users, err := a.adminService.ListUsers()
	if err != nil {
		logger.Warning("admin dashboard error:", err)
		c.String(http.StatusInternalServerError, "Failed to load admin dashboard.")
		return
	}
	html(c, "admin_dashboard.html", "Admin Dashboard", gin.H{"users": users})
}

func (a *AdminController) user(c *gin.Context) {
	id, err := parseUserId(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	user, stats, err := a.adminService.GetUserDetail(id)
	if service.IsUserNotFound(err) {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logger.Warning("admin user detail error:", err)
		c.String(http.StatusInternalServerError, "Failed to load user.")
		return
	}

	html(c, "admin_user.html", "User Detail", gin.H{"detail": user, "stats": stats})
}

func (a *AdminController) screenshots(c *gin.Context) {
	users, err := a.adminService.ListUsersWithScreenshots()
	if err != nil {
		logger.Warning("admin screenshots error:", err)
		c.String(http.StatusInternalServerError, "Failed to load screenshots.")
		return
	}
	html(c, "admin_screenshots.html", "Deposit Screenshots", gin.H{"users": users})
}

// updateBalance applies a signed delta to the user's balance. Non-numeric
// input is rejected.
func (a *AdminController) updateBalance(c *gin.Context) {
	id, err := parseUserId(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	delta, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid amount")
		return
	}

	err = a.adminService.AdjustBalance(id, delta)
	if service.IsUserNotFound(err) {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logger.Warning("update balance error:", err)
		c.String(http.StatusInternalServerError, "Failed to update balance.")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/admin/user/%d", id))
}

// addTrade appends a trade dated now and adjusts balance by profit-loss in
// the same update.
func (a *AdminController) addTrade(c *gin.Context) {
	id, err := parseUserId(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	var form TradeForm
	_ = c.ShouldBind(&form)
	profit, _ := strconv.ParseFloat(form.Profit, 64)
	loss, _ := strconv.ParseFloat(form.Loss, 64)

	_, err = a.adminService.AddTrade(id, form.Type, profit, loss)
	if service.IsUserNotFound(err) {
		c.String(http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logger.Warning("add trade error:", err)
		c.String(http.StatusInternalServerError, "Failed to add trade.")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/admin/user/%d", id))
}

// approveWithdrawal flips one entry to approved, addressed by its stable id.
func (a *AdminController) approveWithdrawal(c *gin.Context) {
	userId, err := parseUserId(c.Param("userId"))
	if err != nil {
		c.String(http.StatusNotFound, "User not found")
		return
	}

	err = a.adminService.ApproveWithdrawal(userId, c.Param("withdrawalId"))
	if errors.Is(err, service.ErrWithdrawalNotFound) {
		c.String(http.StatusNotFound, "Withdrawal not found")
		return
	}
	if err != nil {
		logger.Warning("approve withdrawal error:", err)
		c.String(http.StatusInternalServerError, "Failed to approve withdrawal.")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/admin/user/%d", userId))
}

func parseUserId(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("bad user id")
	}
	return uint(id), nil
}
