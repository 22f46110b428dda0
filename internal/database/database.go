package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/config"
	"github.com/Algets07/employee-management/internal/models"
)

// Connect opens the MySQL connection, tunes the pool and runs migrations.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.WorkAssignment{},
		&models.Notice{},
		&models.Attendance{},
	); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// SeedDefaultAdmin creates the initial staff account when the users table
// holds no staff user yet. Without it a fresh installation has no way to
// log in and provision employees.
func SeedDefaultAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	var count int64
	if err := db.Model(&models.User{}).Where("is_staff = ?", true).Count(&count).Error; err != nil {
		return fmt.Errorf("counting staff users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if cfg.Password == "" {
		return fmt.Errorf("no staff user exists and DEFAULT_ADMIN_PASSWORD is not set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing default admin password: %w", err)
	}

	admin := models.User{
		Username: cfg.Username,
		Password: string(hash),
		IsStaff:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("creating default admin: %w", err)
	}
	return nil
}
