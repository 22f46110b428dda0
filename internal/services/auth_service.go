package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/models"
)

// Role tags the identity resolved at login time. It is fixed once per
// session: handlers never re-derive it from user flags.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Claims is the session token payload. EmployeeID is zero for admins.
type Claims struct {
	UserID     uint `json:"user_id"`
	Role       Role `json:"role"`
	EmployeeID uint `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}

// AuthService verifies credentials, resolves roles and issues session tokens.
type AuthService struct {
	db       *gorm.DB
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{db: db, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Authenticate verifies the credential pair and resolves the account's role.
// A pair that authenticates but resolves to a role other than want fails
// with ErrInvalidCredentials, so callers cannot distinguish a wrong password
// from a wrong entry point.
func (s *AuthService) Authenticate(username, password string, want Role) (*models.User, *models.Employee, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	role, employee, err := s.ResolveRole(&user)
	if err != nil {
		return nil, nil, err
	}
	if role != want {
		return nil, nil, ErrInvalidCredentials
	}
	return &user, employee, nil
}

// ResolveRole derives the role from the user record: staff users are admins,
// non-staff users owning an employee profile are employees. A staff user
// that also owns a profile is ambiguous and gets ErrAmbiguousRole; a
// non-staff user without a profile cannot log in at all.
func (s *AuthService) ResolveRole(user *models.User) (Role, *models.Employee, error) {
	var employee models.Employee
	err := s.db.Where("user_id = ?", user.ID).First(&employee).Error
	hasEmployee := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, err
	}

	switch {
	case user.IsStaff && hasEmployee:
		return "", nil, ErrAmbiguousRole
	case user.IsStaff:
		return RoleAdmin, nil, nil
	case hasEmployee:
		return RoleEmployee, &employee, nil
	default:
		return "", nil, ErrInvalidCredentials
	}
}

// IssueToken creates a signed session token for the resolved identity.
// The jti uniquely identifies the session so logout can blacklist it.
func (s *AuthService) IssueToken(user *models.User, role Role, employeeID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:     user.ID,
		Role:       role,
		EmployeeID: employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a session token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// TokenTTL returns the configured session lifetime.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
