package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const attendanceSheet = "Attendance"

// ExportAttendance streams all attendance records as an XLSX workbook.
func (h *AppHandler) ExportAttendance(c *gin.Context) {
	records, err := h.attendance.ListAll()
	if err != nil {
		h.fail(c, "loading attendance", err)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			h.logger.Warn("closing workbook failed", zap.Error(err))
		}
	}()

	index, err := f.NewSheet(attendanceSheet)
	if err != nil {
		h.fail(c, "creating sheet", err)
		return
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Employee ID", "Name", "Department", "Date", "Status", "Remark"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(attendanceSheet, cell, header)
	}
	if headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err == nil {
		f.SetCellStyle(attendanceSheet, "A1", "F1", headerStyle)
	}

	for i, record := range records {
		row := i + 2
		values := []interface{}{
			record.Employee.EmployeeID,
			record.Employee.User.FullName(),
			record.Employee.Department,
			record.Date.Format(dateLayout),
			string(record.Status),
			record.Remark,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(attendanceSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.fail(c, "writing workbook", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="attendance.xlsx"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
