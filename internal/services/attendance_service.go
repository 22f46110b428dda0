package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/models"
)

// AttendanceService manages daily attendance records.
type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// Upsert writes the attendance record for (employee, date): an existing
// row for that pair gets its status and remark overwritten, otherwise a
// new row is created. The unique index on the pair backs this against
// concurrent writers.
func (s *AttendanceService) Upsert(employeeID uint, date time.Time, status models.AttendanceStatus, remark string) (*models.Attendance, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if _, err := s.requireEmployee(employeeID); err != nil {
		return nil, err
	}

	var record models.Attendance
	err := s.db.Where("employee_id = ? AND date = ?", employeeID, date).First(&record).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{"status": status, "remark": remark}
		if err := s.db.Model(&record).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &record, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.Attendance{
			EmployeeID: employeeID,
			Date:       date,
			Status:     status,
			Remark:     remark,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, err
		}
		return &record, nil
	default:
		return nil, err
	}
}

// ListAll returns every attendance record with its employee, newest date first.
func (s *AttendanceService) ListAll() ([]models.Attendance, error) {
	var records []models.Attendance
	err := s.db.Preload("Employee.User").Order("date desc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListForEmployee returns the employee's own records, newest date first.
// A limit of zero means no limit.
func (s *AttendanceService) ListForEmployee(employeeID uint, limit int) ([]models.Attendance, error) {
	var records []models.Attendance
	query := s.db.Where("employee_id = ?", employeeID).Order("date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *AttendanceService) requireEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}
