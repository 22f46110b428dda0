package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Algets07/employee-management/internal/handlers"
	"github.com/Algets07/employee-management/internal/middleware"
	"github.com/Algets07/employee-management/internal/services"
	"github.com/Algets07/employee-management/internal/session"
)

// New wires the full route table: public login pages, the authenticated
// logout, and the two role-gated page groups.
func New(
	authHandler *handlers.AuthHandler,
	appHandler *handlers.AppHandler,
	authService *services.AuthService,
	blacklist *session.Blacklist,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	router.GET("/", authHandler.Home)
	router.GET("/admin/login/", authHandler.AdminLoginPage)
	router.POST("/admin/login/", authHandler.AdminLogin)
	router.GET("/employee/login/", authHandler.EmployeeLoginPage)
	router.POST("/employee/login/", authHandler.EmployeeLogin)

	// Authenticated routes
	authenticated := router.Group("/")
	authenticated.Use(middleware.Auth(authService, blacklist))
	{
		authenticated.GET("/logout/", authHandler.Logout)

		admin := authenticated.Group("/admin")
		admin.Use(middleware.AdminOnly())
		{
			admin.GET("/dashboard/", appHandler.AdminDashboard)
			admin.GET("/employees/add/", appHandler.AddEmployeeForm)
			admin.POST("/employees/add/", appHandler.AddEmployee)
			admin.GET("/work/assign/", appHandler.AssignWorkForm)
			admin.POST("/work/assign/", appHandler.AssignWork)
			admin.GET("/work/:id/edit/", appHandler.EditWorkForm)
			admin.POST("/work/:id/edit/", appHandler.EditWork)
			admin.GET("/notices/", appHandler.NoticeList)
			admin.GET("/notices/:id/approve/", appHandler.ApproveNotice)
			admin.POST("/notices/:id/approve/", appHandler.ApproveNotice)
			admin.GET("/notices/:id/reject/", appHandler.RejectNotice)
			admin.POST("/notices/:id/reject/", appHandler.RejectNotice)
			admin.GET("/attendance/", appHandler.AttendancePage)
			admin.POST("/attendance/", appHandler.AttendanceSubmit)
			admin.GET("/attendance/export/", appHandler.ExportAttendance)
		}

		employee := authenticated.Group("/employee")
		employee.Use(middleware.EmployeeOnly())
		{
			employee.GET("/dashboard/", appHandler.EmployeeDashboard)
			employee.GET("/work/", appHandler.WorkList)
			employee.POST("/work/", appHandler.WorkStatusUpdate)
			employee.GET("/notice/request/", appHandler.NoticeRequestForm)
			employee.POST("/notice/request/", appHandler.NoticeRequest)
			employee.GET("/attendance/", appHandler.EmployeeAttendance)
		}
	}

	return router
}
