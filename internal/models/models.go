package models

import "time"

// WorkStatus represents the status of a work assignment
type WorkStatus string

const (
	WorkPending    WorkStatus = "PENDING"
	WorkInProgress WorkStatus = "IN_PROGRESS"
	WorkCompleted  WorkStatus = "COMPLETED"
)

// Valid reports whether s is one of the three allowed work statuses.
func (s WorkStatus) Valid() bool {
	switch s {
	case WorkPending, WorkInProgress, WorkCompleted:
		return true
	}
	return false
}

// NoticeStatus represents the status of an employee notice
type NoticeStatus string

const (
	NoticePending  NoticeStatus = "PENDING"
	NoticeApproved NoticeStatus = "APPROVED"
	NoticeRejected NoticeStatus = "REJECTED"
)

// AttendanceStatus represents a daily attendance mark
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLeave   AttendanceStatus = "LEAVE"
)

// Valid reports whether s is one of the three allowed attendance statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLeave:
		return true
	}
	return false
}

// User represents an account in the system. Admins are users with IsStaff set;
// employees are non-staff users that own an Employee record.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:150"`
	Password  string    `json:"-"` // bcrypt hash, never exposed in JSON
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	Email     string    `json:"email" gorm:"size:254"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name for the user, falling back to the username.
func (u User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

// Employee is the profile record owned one-to-one by a non-staff User.
// Deleting the owning user cascades to the employee and everything below it.
type Employee struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"uniqueIndex"`
	User       User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	EmployeeID string    `json:"employee_id" gorm:"uniqueIndex;size:20"`
	Department string    `json:"department" gorm:"size:100"`
	Position   string    `json:"position" gorm:"size:100"`
	JoinDate   time.Time `json:"join_date"`
	Phone      string    `json:"phone" gorm:"size:20"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WorkAssignment is a task given to one employee (the tasker) by an admin
// (the assigner). The assigner reference is nulled if that user is deleted;
// the assignment itself is deleted with its tasker. AssignDate is set once
// at creation and never changed afterwards.
type WorkAssignment struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	AssignerID  *uint      `json:"assigner_id,omitempty"`
	Assigner    *User      `json:"assigner,omitempty" gorm:"foreignKey:AssignerID;constraint:OnDelete:SET NULL"`
	TaskerID    uint       `json:"tasker_id"`
	Tasker      Employee   `json:"tasker" gorm:"foreignKey:TaskerID;constraint:OnDelete:CASCADE"`
	Title       string     `json:"title" gorm:"size:200"`
	Description string     `json:"description" gorm:"type:text"`
	AssignDate  time.Time  `json:"assign_date" gorm:"autoCreateTime"`
	DueDate     time.Time  `json:"due_date"`
	Status      WorkStatus `json:"status" gorm:"size:20;default:'PENDING'"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Notice is a request submitted by an employee for admin disposition.
// It always starts PENDING; only admins move it to APPROVED or REJECTED.
type Notice struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	EmployeeID uint         `json:"employee_id"`
	Employee   Employee     `json:"employee" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Subject    string       `json:"subject" gorm:"size:200"`
	Message    string       `json:"message" gorm:"type:text"`
	CreatedAt  time.Time    `json:"created_at" gorm:"autoCreateTime"`
	Status     NoticeStatus `json:"status" gorm:"size:20;default:'PENDING'"`
}

// Attendance holds one status record per employee per calendar day.
// The (employee_id, date) pair is unique; writes are upserts on that key.
type Attendance struct {
	ID         uint             `json:"id" gorm:"primaryKey"`
	EmployeeID uint             `json:"employee_id" gorm:"uniqueIndex:idx_attendance_employee_date"`
	Employee   Employee         `json:"employee" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Date       time.Time        `json:"date" gorm:"uniqueIndex:idx_attendance_employee_date"`
	Status     AttendanceStatus `json:"status" gorm:"size:20"`
	Remark     string           `json:"remark" gorm:"size:255"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
