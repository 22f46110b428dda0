package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/models"
)

// ProvisionInput carries the validated fields for creating a new employee
// account: the identity record plus the linked profile.
type ProvisionInput struct {
	Username   string
	Password   string
	FirstName  string
	LastName   string
	Email      string
	EmployeeID string
	Department string
	Position   string
	JoinDate   time.Time
	Phone      string
}

// EmployeeService manages employee provisioning and lookups.
type EmployeeService struct {
	db *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

// Provision creates the user account (non-staff, hashed password) and the
// linked employee profile in one transaction. Duplicate username or
// employee ID is checked up front so the form gets a field-level error;
// the unique indexes back the same rules at the storage level. Either both
// records exist afterwards or neither does.
func (s *EmployeeService) Provision(in ProvisionInput) (*models.Employee, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	if err := s.db.Model(&models.Employee{}).Where("employee_id = ?", in.EmployeeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicateEmployeeID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	employee := models.Employee{
		EmployeeID: in.EmployeeID,
		Department: in.Department,
		Position:   in.Position,
		JoinDate:   in.JoinDate,
		Phone:      in.Phone,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username:  in.Username,
			Password:  string(hash),
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			IsStaff:   false,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		employee.UserID = user.ID
		employee.User = user
		return tx.Create(&employee).Error
	})
	if err != nil {
		return nil, err
	}

	return &employee, nil
}

// List returns all employees with their users, ordered by employee ID.
func (s *EmployeeService) List() ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db.Preload("User").Order("employee_id asc").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Count returns the total number of employees.
func (s *EmployeeService) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.Employee{}).Count(&count).Error
	return count, err
}

// GetByID fetches one employee with its user record.
func (s *EmployeeService) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.Preload("User").First(&employee, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}
