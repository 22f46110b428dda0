package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Algets07/employee-management/internal/middleware"
	"github.com/Algets07/employee-management/internal/services"
	"github.com/Algets07/employee-management/internal/session"
)

// LoginInput defines the expected credential submission from either login page.
type LoginInput struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// AuthHandler serves the login entry points, logout and the home redirect.
type AuthHandler struct {
	auth      *services.AuthService
	blacklist *session.Blacklist
	logger    *zap.Logger
}

func NewAuthHandler(auth *services.AuthService, blacklist *session.Blacklist, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, blacklist: blacklist, logger: logger}
}

// Home redirects by role: admins to the admin dashboard, employees to
// theirs, everyone else to the employee login page.
func (h *AuthHandler) Home(c *gin.Context) {
	tokenString, err := c.Cookie(middleware.SessionCookie)
	if err == nil && tokenString != "" {
		if claims, err := h.auth.ParseToken(tokenString); err == nil {
			switch claims.Role {
			case services.RoleAdmin:
				c.Redirect(http.StatusSeeOther, "/admin/dashboard/")
				return
			case services.RoleEmployee:
				c.Redirect(http.StatusSeeOther, "/employee/dashboard/")
				return
			}
		}
	}
	c.Redirect(http.StatusSeeOther, middleware.EmployeeLoginPath)
}

// AdminLoginPage renders the admin login view-model.
func (h *AuthHandler) AdminLoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "admin_login", "flash": takeFlash(c)})
}

// AdminLogin handles the admin credential submission.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, services.RoleAdmin, "/admin/dashboard/", "Invalid admin credentials")
}

// EmployeeLoginPage renders the employee login view-model.
func (h *AuthHandler) EmployeeLoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "employee_login", "flash": takeFlash(c)})
}

// EmployeeLogin handles the employee credential submission.
func (h *AuthHandler) EmployeeLogin(c *gin.Context) {
	h.login(c, services.RoleEmployee, "/employee/dashboard/", "Invalid employee credentials")
}

// login authenticates against one entry point. A credential pair that
// verifies but resolves to the other role gets the same generic error as
// a bad password, so the entry points cannot be used to probe roles.
func (h *AuthHandler) login(c *gin.Context, want services.Role, successPath, genericError string) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	user, employee, err := h.auth.Authenticate(input.Username, input.Password, want)
	if err != nil {
		if errors.Is(err, services.ErrAmbiguousRole) {
			// Staff account that also owns an employee profile. Undefined
			// in the product rules, so refuse it and leave a trace.
			h.logger.Warn("login refused for ambiguous account",
				zap.String("username", input.Username))
			c.JSON(http.StatusUnauthorized, gin.H{"error": genericError})
			return
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": genericError})
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	var employeeID uint
	if employee != nil {
		employeeID = employee.ID
	}

	token, err := h.auth.IssueToken(user, want, employeeID)
	if err != nil {
		h.logger.Error("issuing session token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(h.auth.TokenTTL().Seconds()), "/", "", false, true)
	setFlash(c, "Logged in successfully")
	c.Redirect(http.StatusSeeOther, successPath)
}

// Logout revokes the current session and redirects to the employee login
// page. With a blacklist configured the token is dead server-side too;
// otherwise clearing the cookie ends the browser session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if ok && h.blacklist != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.blacklist.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			h.logger.Error("revoking session token failed", zap.Error(err))
		}
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	setFlash(c, "Logged out successfully")
	c.Redirect(http.StatusSeeOther, middleware.EmployeeLoginPath)
}
