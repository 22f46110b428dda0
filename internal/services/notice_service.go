package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/models"
)

// NoticeService manages employee notices and their admin disposition.
type NoticeService struct {
	db *gorm.DB
}

func NewNoticeService(db *gorm.DB) *NoticeService {
	return &NoticeService{db: db}
}

// Create stores a new notice for the employee. The status is always
// PENDING here no matter what the submitter sent.
func (s *NoticeService) Create(employeeID uint, subject, message string) (*models.Notice, error) {
	notice := models.Notice{
		EmployeeID: employeeID,
		Subject:    subject,
		Message:    message,
		Status:     models.NoticePending,
	}
	if err := s.db.Create(&notice).Error; err != nil {
		return nil, err
	}
	return &notice, nil
}

// SetStatus moves a notice to APPROVED or REJECTED. The write is
// unconditional: setting an already-decided notice to the same or the
// other status is an overwrite, not an error.
func (s *NoticeService) SetStatus(id uint, status models.NoticeStatus) (*models.Notice, error) {
	var notice models.Notice
	if err := s.db.First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&notice).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &notice, nil
}

// List returns all notices with their employees, newest first.
func (s *NoticeService) List() ([]models.Notice, error) {
	var notices []models.Notice
	err := s.db.Preload("Employee.User").Order("created_at desc").Find(&notices).Error
	if err != nil {
		return nil, err
	}
	return notices, nil
}

// Recent returns the n most recently submitted notices.
func (s *NoticeService) Recent(n int) ([]models.Notice, error) {
	var notices []models.Notice
	err := s.db.Preload("Employee.User").Order("created_at desc").Limit(n).Find(&notices).Error
	if err != nil {
		return nil, err
	}
	return notices, nil
}

// CountPending returns the number of notices still awaiting disposition.
func (s *NoticeService) CountPending() (int64, error) {
	var count int64
	err := s.db.Model(&models.Notice{}).Where("status = ?", models.NoticePending).Count(&count).Error
	return count, err
}
