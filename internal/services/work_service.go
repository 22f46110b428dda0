package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/models"
)

// WorkInput carries the editable fields of a work assignment. Assigner and
// assign date are never part of it: the first is fixed to the acting admin
// at creation, the second is set once by the database.
type WorkInput struct {
	TaskerID    uint
	Title       string
	Description string
	DueDate     time.Time
}

// WorkService manages work assignments.
type WorkService struct {
	db *gorm.DB
}

func NewWorkService(db *gorm.DB) *WorkService {
	return &WorkService{db: db}
}

// Create stores a new assignment for the given admin. Status starts PENDING.
func (s *WorkService) Create(assignerID uint, in WorkInput) (*models.WorkAssignment, error) {
	if _, err := s.requireEmployee(in.TaskerID); err != nil {
		return nil, err
	}

	assignment := models.WorkAssignment{
		AssignerID:  &assignerID,
		TaskerID:    in.TaskerID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      models.WorkPending,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Update edits an existing assignment. Only the fields of WorkInput plus
// the status may change; assigner and assign date stay as created.
func (s *WorkService) Update(id uint, in WorkInput, status models.WorkStatus) (*models.WorkAssignment, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	assignment, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireEmployee(in.TaskerID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"tasker_id":   in.TaskerID,
		"title":       in.Title,
		"description": in.Description,
		"due_date":    in.DueDate,
		"status":      status,
	}
	if err := s.db.Model(assignment).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// UpdateStatus changes the status of one assignment on behalf of the owning
// employee. The lookup is scoped by ownership, so a task belonging to
// someone else is indistinguishable from a missing one.
func (s *WorkService) UpdateStatus(employeeID, taskID uint, status models.WorkStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	var assignment models.WorkAssignment
	err := s.db.Where("id = ? AND tasker_id = ?", taskID, employeeID).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Model(&assignment).Update("status", status).Error
}

// GetByID fetches one assignment with its tasker and assigner.
func (s *WorkService) GetByID(id uint) (*models.WorkAssignment, error) {
	var assignment models.WorkAssignment
	err := s.db.Preload("Tasker.User").Preload("Assigner").First(&assignment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// ListForEmployee returns the employee's assignments, newest first.
// A limit of zero means no limit.
func (s *WorkService) ListForEmployee(employeeID uint, limit int) ([]models.WorkAssignment, error) {
	var assignments []models.WorkAssignment
	query := s.db.Where("tasker_id = ?", employeeID).Order("assign_date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// Recent returns the n most recently created assignments across all employees.
func (s *WorkService) Recent(n int) ([]models.WorkAssignment, error) {
	var assignments []models.WorkAssignment
	err := s.db.Preload("Tasker.User").Order("assign_date desc").Limit(n).Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// Count returns the total number of assignments.
func (s *WorkService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.WorkAssignment{}).Count(&count).Error
	return count, err
}

func (s *WorkService) requireEmployee(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}
