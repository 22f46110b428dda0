package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/database"
	"github.com/Algets07/employee-management/internal/handlers"
	"github.com/Algets07/employee-management/internal/middleware"
	"github.com/Algets07/employee-management/internal/models"
	"github.com/Algets07/employee-management/internal/services"
)

func setupApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "boss",
		Password: string(hash),
		IsStaff:  true,
	}).Error)

	zlog := zap.NewNop()
	authService := services.NewAuthService(db, "test-secret", time.Hour)
	appHandler := handlers.NewAppHandler(
		services.NewEmployeeService(db),
		services.NewWorkService(db),
		services.NewNoticeService(db),
		services.NewAttendanceService(db),
		zlog,
	)
	authHandler := handlers.NewAuthHandler(authService, nil, zlog)

	engine := New(authHandler, appHandler, authService, nil, []string{"http://localhost:3000"})
	return engine, db
}

func doForm(engine *gin.Engine, method, path string, form url.Values, session *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doGet(engine *gin.Engine, path string, session *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func login(t *testing.T, engine *gin.Engine, path, username, password string) *http.Cookie {
	t.Helper()
	w := doForm(engine, http.MethodPost, path, url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusSeeOther, w.Code, "login at %s failed: %s", path, w.Body.String())
	return sessionCookie(t, w)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func provisionAlice(t *testing.T, engine *gin.Engine, admin *http.Cookie) {
	t.Helper()
	w := doForm(engine, http.MethodPost, "/admin/employees/add/", url.Values{
		"username":    {"alice"},
		"password":    {"alicepass123"},
		"first_name":  {"Alice"},
		"email":       {"alice@example.com"},
		"employee_id": {"E100"},
		"department":  {"Engineering"},
		"position":    {"Developer"},
		"join_date":   {"2024-03-01"},
	}, admin)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())
}

func aliceEmployee(t *testing.T, db *gorm.DB) models.Employee {
	t.Helper()
	var employee models.Employee
	require.NoError(t, db.Where("employee_id = ?", "E100").First(&employee).Error)
	return employee
}

func TestUnauthenticatedRedirectsToEmployeeLogin(t *testing.T) {
	engine, _ := setupApp(t)

	for _, path := range []string{"/admin/dashboard/", "/employee/work/", "/logout/"} {
		w := doGet(engine, path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/employee/login/", w.Header().Get("Location"), path)
	}
}

func TestHomeRedirectsByRole(t *testing.T) {
	engine, _ := setupApp(t)

	w := doGet(engine, "/", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/employee/login/", w.Header().Get("Location"))

	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	w = doGet(engine, "/", admin)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard/", w.Header().Get("Location"))
}

func TestProvisionAndLoginEntryPoints(t *testing.T) {
	engine, db := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	provisionAlice(t, engine, admin)

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.False(t, user.IsStaff)
	assert.NotContains(t, user.Password, "alicepass123")

	// Alice can log in only at the employee entry point.
	login(t, engine, "/employee/login/", "alice", "alicepass123")

	w := doForm(engine, http.MethodPost, "/admin/login/", url.Values{
		"username": {"alice"},
		"password": {"alicepass123"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid admin credentials")

	// The admin cannot use the employee entry point either.
	w = doForm(engine, http.MethodPost, "/employee/login/", url.Values{
		"username": {"boss"},
		"password": {"adminpass123"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid employee credentials")
}

func TestDuplicateProvisioningReturnsFieldErrors(t *testing.T) {
	engine, _ := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	provisionAlice(t, engine, admin)

	w := doForm(engine, http.MethodPost, "/admin/employees/add/", url.Values{
		"username":    {"alice"},
		"password":    {"otherpass123"},
		"employee_id": {"E999"},
		"department":  {"Sales"},
		"position":    {"Manager"},
		"join_date":   {"2024-04-01"},
	}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")
}

func TestEmployeeForbiddenFromAdminPages(t *testing.T) {
	engine, _ := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	provisionAlice(t, engine, admin)
	alice := login(t, engine, "/employee/login/", "alice", "alicepass123")

	w := doGet(engine, "/admin/dashboard/", alice)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doGet(engine, "/employee/dashboard/", admin)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWorkAssignmentFlow(t *testing.T) {
	engine, db := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	provisionAlice(t, engine, admin)
	employee := aliceEmployee(t, db)

	w := doForm(engine, http.MethodPost, "/admin/work/assign/", url.Values{
		"tasker_id":   {strconv.Itoa(int(employee.ID))},
		"title":       {"Quarterly report"},
		"description": {"Prepare the Q1 report"},
		"due_date":    {"2025-01-01"},
	}, admin)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	// Alice sees the task in her list.
	alice := login(t, engine, "/employee/login/", "alice", "alicepass123")
	w = doGet(engine, "/employee/work/", alice)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	tasks := body["tasks"].([]interface{})
	require.Len(t, tasks, 1)
	task := tasks[0].(map[string]interface{})
	assert.Equal(t, "Quarterly report", task["title"])
	assert.Equal(t, "PENDING", task["status"])
	taskID := int(task["id"].(float64))

	// Alice moves it to IN_PROGRESS.
	w = doForm(engine, http.MethodPost, "/employee/work/", url.Values{
		"task_id": {strconv.Itoa(taskID)},
		"status":  {"IN_PROGRESS"},
	}, alice)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	// The admin dashboard's recent assignments reflect the change.
	w = doGet(engine, "/admin/dashboard/", admin)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	recent := body["recent_assignments"].([]interface{})
	require.Len(t, recent, 1)
	assert.Equal(t, "IN_PROGRESS", recent[0].(map[string]interface{})["status"])
	assert.Equal(t, float64(1), body["total_tasks"])
}

func TestWorkStatusUpdateRejectsForeignAndInvalid(t *testing.T) {
	engine, db := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	provisionAlice(t, engine, admin)
	employee := aliceEmployee(t, db)

	workService := services.NewWorkService(db)
	assignment, err := workService.Create(1, services.WorkInput{
		TaskerID:    employee.ID,
		Title:       "Report",
		Description: "x",
		DueDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	alice := login(t, engine, "/employee/login/", "alice", "alicepass123")

	// Unknown status code.
	w := doForm(engine, http.MethodPost, "/employee/work/", url.Values{
		"task_id": {strconv.Itoa(int(assignment.ID))},
		"status":  {"DONE"},
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A task ID that does not belong to alice reads as not found.
	w = doForm(engine, http.MethodPost, "/employee/work/", url.Values{
		"task_id": {"9999"},
		"status":  {"COMPLETED"},
	}, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)

	reloaded, err := workService.GetByID(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkPending, reloaded.Status)
}

func TestNoticeFlow(t *testing.T) {
	engine, db := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	provisionAlice(t, engine, admin)
	alice := login(t, engine, "/employee/login/", "alice", "alicepass123")

	// A submitted status value is ignored: the notice starts PENDING.
	w := doForm(engine, http.MethodPost, "/employee/notice/request/", url.Values{
		"subject": {"Leave request"},
		"message": {"Two days off please"},
		"status":  {"APPROVED"},
	}, alice)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	var notice models.Notice
	require.NoError(t, db.First(&notice).Error)
	assert.Equal(t, models.NoticePending, notice.Status)

	w = doGet(engine, "/admin/notices/", admin)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Len(t, body["notices"].([]interface{}), 1)

	noticeID := strconv.Itoa(int(notice.ID))
	w = doGet(engine, "/admin/notices/"+noticeID+"/approve/", admin)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.NoError(t, db.First(&notice, notice.ID).Error)
	assert.Equal(t, models.NoticeApproved, notice.Status)

	// Approving again is a no-op overwrite.
	w = doGet(engine, "/admin/notices/"+noticeID+"/approve/", admin)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = doGet(engine, "/admin/notices/"+noticeID+"/reject/", admin)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.NoError(t, db.First(&notice, notice.ID).Error)
	assert.Equal(t, models.NoticeRejected, notice.Status)
}

func TestAttendanceUpsertFlow(t *testing.T) {
	engine, db := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	provisionAlice(t, engine, admin)
	employee := aliceEmployee(t, db)
	employeeID := strconv.Itoa(int(employee.ID))

	w := doForm(engine, http.MethodPost, "/admin/attendance/", url.Values{
		"employee_id": {employeeID},
		"date":        {"2025-03-10"},
		"status":      {"PRESENT"},
	}, admin)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	w = doForm(engine, http.MethodPost, "/admin/attendance/", url.Values{
		"employee_id": {employeeID},
		"date":        {"2025-03-10"},
		"status":      {"LEAVE"},
		"remark":      {"sick leave"},
	}, admin)
	require.Equal(t, http.StatusSeeOther, w.Code, w.Body.String())

	// Exactly one row, holding the second write.
	var count int64
	require.NoError(t, db.Model(&models.Attendance{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	alice := login(t, engine, "/employee/login/", "alice", "alicepass123")
	w = doGet(engine, "/employee/attendance/", alice)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	records := body["records"].([]interface{})
	require.Len(t, records, 1)
	record := records[0].(map[string]interface{})
	assert.Equal(t, "LEAVE", record["status"])
	assert.Equal(t, "sick leave", record["remark"])
}

func TestAttendanceExport(t *testing.T) {
	engine, db := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")
	provisionAlice(t, engine, admin)
	employee := aliceEmployee(t, db)

	_, err := services.NewAttendanceService(db).Upsert(
		employee.ID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), models.AttendancePresent, "on site")
	require.NoError(t, err)

	w := doGet(engine, "/admin/attendance/export/", admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance.xlsx")

	workbook, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()

	header, err := workbook.GetCellValue("Attendance", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Employee ID", header)

	value, err := workbook.GetCellValue("Attendance", "A2")
	require.NoError(t, err)
	assert.Equal(t, "E100", value)
}

func TestLogoutClearsSession(t *testing.T) {
	engine, _ := setupApp(t)
	admin := login(t, engine, "/admin/login/", "boss", "adminpass123")

	w := doGet(engine, "/logout/", admin)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/employee/login/", w.Header().Get("Location"))

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookie && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie not cleared")
}
