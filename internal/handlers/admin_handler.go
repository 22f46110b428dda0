package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Algets07/employee-management/internal/middleware"
	"github.com/Algets07/employee-management/internal/models"
	"github.com/Algets07/employee-management/internal/services"
)

// AppHandler serves the admin and employee pages on top of the services.
type AppHandler struct {
	employees  *services.EmployeeService
	work       *services.WorkService
	notices    *services.NoticeService
	attendance *services.AttendanceService
	logger     *zap.Logger
}

func NewAppHandler(
	employees *services.EmployeeService,
	work *services.WorkService,
	notices *services.NoticeService,
	attendance *services.AttendanceService,
	logger *zap.Logger,
) *AppHandler {
	return &AppHandler{
		employees:  employees,
		work:       work,
		notices:    notices,
		attendance: attendance,
		logger:     logger,
	}
}

// EmployeeCreateInput defines the provisioning form.
type EmployeeCreateInput struct {
	Username   string `form:"username" json:"username" binding:"required,max=150"`
	Password   string `form:"password" json:"password" binding:"required,min=8"`
	FirstName  string `form:"first_name" json:"first_name" binding:"omitempty,max=150"`
	LastName   string `form:"last_name" json:"last_name" binding:"omitempty,max=150"`
	Email      string `form:"email" json:"email" binding:"omitempty,email"`
	EmployeeID string `form:"employee_id" json:"employee_id" binding:"required,max=20"`
	Department string `form:"department" json:"department" binding:"required,max=100"`
	Position   string `form:"position" json:"position" binding:"required,max=100"`
	JoinDate   string `form:"join_date" json:"join_date" binding:"required,datetime=2006-01-02"`
	Phone      string `form:"phone" json:"phone" binding:"omitempty,max=20"`
}

// WorkAssignmentInput defines the work assignment form, shared between
// create and edit. Status is ignored on create (always PENDING).
type WorkAssignmentInput struct {
	TaskerID    uint   `form:"tasker_id" json:"tasker_id" binding:"required"`
	Title       string `form:"title" json:"title" binding:"required,max=200"`
	Description string `form:"description" json:"description" binding:"required"`
	DueDate     string `form:"due_date" json:"due_date" binding:"required,datetime=2006-01-02"`
	Status      string `form:"status" json:"status"`
}

// AttendanceInput defines the attendance recording form.
type AttendanceInput struct {
	EmployeeID uint   `form:"employee_id" json:"employee_id" binding:"required"`
	Date       string `form:"date" json:"date" binding:"required,datetime=2006-01-02"`
	Status     string `form:"status" json:"status" binding:"required"`
	Remark     string `form:"remark" json:"remark" binding:"omitempty,max=255"`
}

// AdminDashboard aggregates counts and recent activity for the admin view.
func (h *AppHandler) AdminDashboard(c *gin.Context) {
	employees, err := h.employees.List()
	if err != nil {
		h.fail(c, "loading employees", err)
		return
	}
	pendingNotices, err := h.notices.CountPending()
	if err != nil {
		h.fail(c, "counting pending notices", err)
		return
	}
	totalTasks, err := h.work.Count()
	if err != nil {
		h.fail(c, "counting assignments", err)
		return
	}
	recentAssignments, err := h.work.Recent(5)
	if err != nil {
		h.fail(c, "loading recent assignments", err)
		return
	}
	recentNotices, err := h.notices.Recent(5)
	if err != nil {
		h.fail(c, "loading recent notices", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":               "admin_dashboard",
		"flash":              takeFlash(c),
		"employees":          employees,
		"total_employees":    len(employees),
		"pending_notices":    pendingNotices,
		"total_tasks":        totalTasks,
		"recent_assignments": recentAssignments,
		"recent_notices":     recentNotices,
	})
}

// AddEmployeeForm renders the provisioning form view-model.
func (h *AppHandler) AddEmployeeForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "add_employee", "flash": takeFlash(c)})
}

// AddEmployee provisions a new employee account: the identity record and
// the linked profile are created together or not at all.
func (h *AppHandler) AddEmployee(c *gin.Context) {
	var input EmployeeCreateInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	joinDate, err := parseDate(input.JoinDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"join_date": "Enter a valid date in YYYY-MM-DD format."}})
		return
	}

	_, err = h.employees.Provision(services.ProvisionInput{
		Username:   input.Username,
		Password:   input.Password,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		EmployeeID: input.EmployeeID,
		Department: input.Department,
		Position:   input.Position,
		JoinDate:   joinDate,
		Phone:      input.Phone,
	})
	switch {
	case errors.Is(err, services.ErrDuplicateUsername):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": "Username already exists"}})
		return
	case errors.Is(err, services.ErrDuplicateEmployeeID):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"employee_id": "Employee ID already exists"}})
		return
	case err != nil:
		h.fail(c, "provisioning employee", err)
		return
	}

	setFlash(c, "Employee "+input.Username+" created successfully")
	c.Redirect(http.StatusSeeOther, "/admin/dashboard/")
}

// AssignWorkForm renders the assignment form with the employee roster for
// the tasker select box.
func (h *AppHandler) AssignWorkForm(c *gin.Context) {
	employees, err := h.employees.List()
	if err != nil {
		h.fail(c, "loading employees", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "assign_work", "flash": takeFlash(c), "employees": employees})
}

// AssignWork creates a new assignment; the acting admin becomes the assigner.
func (h *AppHandler) AssignWork(c *gin.Context) {
	claims, _ := middleware.Identity(c)

	var input WorkAssignmentInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"due_date": "Enter a valid date in YYYY-MM-DD format."}})
		return
	}

	_, err = h.work.Create(claims.UserID, services.WorkInput{
		TaskerID:    input.TaskerID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     dueDate,
	})
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"tasker_id": "Unknown employee"}})
		return
	}
	if err != nil {
		h.fail(c, "creating assignment", err)
		return
	}

	setFlash(c, "Work assigned successfully")
	c.Redirect(http.StatusSeeOther, "/admin/dashboard/")
}

// EditWorkForm renders the edit form for one assignment.
func (h *AppHandler) EditWorkForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	assignment, err := h.work.GetByID(id)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	}
	if err != nil {
		h.fail(c, "loading assignment", err)
		return
	}

	employees, err := h.employees.List()
	if err != nil {
		h.fail(c, "loading employees", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       "edit_work",
		"flash":      takeFlash(c),
		"assignment": assignment,
		"employees":  employees,
	})
}

// EditWork updates an assignment. The assigner and assign date are fixed;
// everything else on the form may change, status included.
func (h *AppHandler) EditWork(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input WorkAssignmentInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"due_date": "Enter a valid date in YYYY-MM-DD format."}})
		return
	}

	status := models.WorkStatus(input.Status)
	if input.Status == "" {
		status = models.WorkPending
	}

	_, err = h.work.Update(id, services.WorkInput{
		TaskerID:    input.TaskerID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     dueDate,
	}, status)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
		return
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"status": "Invalid status selected."}})
		return
	case err != nil:
		h.fail(c, "updating assignment", err)
		return
	}

	setFlash(c, "Work updated successfully")
	c.Redirect(http.StatusSeeOther, "/admin/dashboard/")
}

// NoticeList shows all notices, newest first.
func (h *AppHandler) NoticeList(c *gin.Context) {
	notices, err := h.notices.List()
	if err != nil {
		h.fail(c, "loading notices", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": "notice_list", "flash": takeFlash(c), "notices": notices})
}

// ApproveNotice sets a notice to APPROVED.
func (h *AppHandler) ApproveNotice(c *gin.Context) {
	h.setNoticeStatus(c, models.NoticeApproved, "Notice approved")
}

// RejectNotice sets a notice to REJECTED.
func (h *AppHandler) RejectNotice(c *gin.Context) {
	h.setNoticeStatus(c, models.NoticeRejected, "Notice rejected")
}

// setNoticeStatus applies the admin disposition. The overwrite is
// unconditional and idempotent: re-approving an approved notice is a no-op.
func (h *AppHandler) setNoticeStatus(c *gin.Context, status models.NoticeStatus, message string) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	_, err := h.notices.SetStatus(id, status)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notice not found"})
		return
	}
	if err != nil {
		h.fail(c, "updating notice", err)
		return
	}

	setFlash(c, message)
	c.Redirect(http.StatusSeeOther, "/admin/notices/")
}

// AttendancePage renders the recording form plus the full attendance list.
func (h *AppHandler) AttendancePage(c *gin.Context) {
	records, err := h.attendance.ListAll()
	if err != nil {
		h.fail(c, "loading attendance", err)
		return
	}
	employees, err := h.employees.List()
	if err != nil {
		h.fail(c, "loading employees", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":      "attendance",
		"flash":     takeFlash(c),
		"records":   records,
		"employees": employees,
	})
}

// AttendanceSubmit upserts the record for (employee, date): an existing
// row is overwritten, otherwise a new one is created.
func (h *AppHandler) AttendanceSubmit(c *gin.Context) {
	var input AttendanceInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors(err)})
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"date": "Enter a valid date in YYYY-MM-DD format."}})
		return
	}

	_, err = h.attendance.Upsert(input.EmployeeID, date, models.AttendanceStatus(input.Status), input.Remark)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"status": "Invalid status selected."}})
		return
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"employee_id": "Unknown employee"}})
		return
	case err != nil:
		h.fail(c, "saving attendance", err)
		return
	}

	setFlash(c, "Attendance saved")
	c.Redirect(http.StatusSeeOther, "/admin/attendance/")
}

// fail logs an unexpected error and answers with a generic 500.
func (h *AppHandler) fail(c *gin.Context, action string, err error) {
	h.logger.Error(action+" failed", zap.Error(err), zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// pathID parses the :id route parameter, answering 404 on garbage. An
// unparsable ID and a missing record look the same to the caller.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return 0, false
	}
	return uint(id), true
}
