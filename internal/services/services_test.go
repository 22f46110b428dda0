package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/database"
	"github.com/Algets07/employee-management/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func provisionTestEmployee(t *testing.T, db *gorm.DB, username, employeeID string) *models.Employee {
	t.Helper()
	employee, err := NewEmployeeService(db).Provision(ProvisionInput{
		Username:   username,
		Password:   "password123",
		FirstName:  "Test",
		LastName:   "Employee",
		EmployeeID: employeeID,
		Department: "Engineering",
		Position:   "Developer",
		JoinDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return employee
}
