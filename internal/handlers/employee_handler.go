package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Algets07/employee-management/internal/middleware"
	"github.com/Algets07/employee-management/internal/models"
	"github.com/Algets07/employee-management/internal/services"
)

// WorkStatusInput defines the status-only update an employee may post for
// one of their own tasks.
type WorkStatusInput struct {
	TaskID uint   `form:"task_id" json:"task_id" binding:"required"`
	Status string `form:"status" json:"status" binding:"required"`
}

// NoticeInput defines the notice request form. Any submitted status is
// ignored: a new notice always starts PENDING.
type NoticeInput struct {
	Subject string `form:"subject" json:"subject" binding:"required,max=200"`
	Message string `form:"message" json:"message" binding:"required"`
}

// EmployeeDashboard shows the employee's own recent activity.
func (h *AppHandler) EmployeeDashboard(c *gin.Context) {
	claims, _ := middleware.Identity(c)

	employee, err := h.employees.GetByID(claims.EmployeeID)
	if err != nil {
		h.fail(c, "loading employee", err)
		return
	}
	tasks, err := h.work.ListForEmployee(claims.EmployeeID, 5)
	if err != nil {
		h.fail(c, "loading tasks", err)
		return
	}
	attendance, err := h.attendance.ListForEmployee(claims.EmployeeID, 10)
	if err != nil {
		h.fail(c, "loading attendance", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       "employee_dashboard",
		"flash":      takeFlash(c),
		"employee":   employee,
		"tasks":      tasks,
		"attendance": attendance,
	})
}

// WorkList shows all of the employee's tasks, newest first.
func (h *AppHandler) WorkList(c *gin.Context) {
	claims, _ := middleware.Identity(c)

	tasks, err := h.work.ListForEmployee(claims.EmployeeID, 0)
	if err != nil {
		h.fail(c, "loading tasks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  "employee_work",
		"flash": takeFlash(c),
		"tasks": tasks,
		"status_choices": []models.WorkStatus{
			models.WorkPending, models.WorkInProgress, models.WorkCompleted,
		},
	})
}

// WorkStatusUpdate changes the status of one of the employee's own tasks.
// A task owned by someone else comes back as not found, never as a
// permission error.
func (h *AppHandler) WorkStatusUpdate(c *gin.Context) {
	claims, _ := middleware.Identity(c)

	var input WorkStatusInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	err := h.work.UpdateStatus(claims.EmployeeID, input.TaskID, models.WorkStatus(input.Status))
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"status": "Invalid status selected."}})
		return
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	case err != nil:
		h.fail(c, "updating task status", err)
		return
	}

	setFlash(c, "Task status updated.")
	c.Redirect(http.StatusSeeOther, "/employee/work/")
}

// NoticeRequestForm renders the notice submission form view-model.
func (h *AppHandler) NoticeRequestForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "notice_request", "flash": takeFlash(c)})
}

// NoticeRequest submits a new notice for the logged-in employee.
func (h *AppHandler) NoticeRequest(c *gin.Context) {
	claims, _ := middleware.Identity(c)

	var input NoticeInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	if _, err := h.notices.Create(claims.EmployeeID, input.Subject, input.Message); err != nil {
		h.fail(c, "creating notice", err)
		return
	}

	setFlash(c, "Notice request submitted")
	c.Redirect(http.StatusSeeOther, "/employee/dashboard/")
}

// EmployeeAttendance shows the employee's own attendance, newest date first.
func (h *AppHandler) EmployeeAttendance(c *gin.Context) {
	claims, _ := middleware.Identity(c)

	records, err := h.attendance.ListForEmployee(claims.EmployeeID, 0)
	if err != nil {
		h.fail(c, "loading attendance", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": "employee_attendance", "flash": takeFlash(c), "records": records})
}
