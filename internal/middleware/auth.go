package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Algets07/employee-management/internal/services"
	"github.com/Algets07/employee-management/internal/session"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "ems_session"

// EmployeeLoginPath is where unauthenticated page requests get redirected.
const EmployeeLoginPath = "/employee/login/"

const identityKey = "identity"

// Auth validates the session token from the cookie (or a Bearer header for
// non-browser clients) and stores the resolved identity in the request
// context. Requests without a valid session are redirected to the employee
// login page. When a blacklist is configured, revoked tokens are rejected
// the same way.
func Auth(auth *services.AuthService, bl *session.Blacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			redirectToLogin(c)
			return
		}

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			redirectToLogin(c)
			return
		}

		if bl != nil {
			revoked, err := bl.Contains(c.Request.Context(), claims.ID)
			if err != nil || revoked {
				redirectToLogin(c)
				return
			}
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// AdminOnly denies access unless the session belongs to an admin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Identity(c)
		if !ok || claims.Role != services.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// EmployeeOnly denies access unless the session belongs to an employee.
func EmployeeOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Identity(c)
		if !ok || claims.Role != services.RoleEmployee || claims.EmployeeID == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// Identity returns the claims stored by Auth for the current request.
func Identity(c *gin.Context) (*services.Claims, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*services.Claims)
	return claims, ok
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, EmployeeLoginPath)
	c.Abort()
}
