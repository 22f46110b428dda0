package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Algets07/employee-management/internal/models"
)

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	admin := models.User{Username: "boss", Password: "x", IsStaff: true}
	require.NoError(t, db.Create(&admin).Error)
	return &admin
}

func TestCreateSetsAssignerAndPendingStatus(t *testing.T) {
	db := setupDB(t)
	admin := seedAdmin(t, db)
	alice := provisionTestEmployee(t, db, "alice", "E100")
	svc := NewWorkService(db)

	assignment, err := svc.Create(admin.ID, WorkInput{
		TaskerID:    alice.ID,
		Title:       "Quarterly report",
		Description: "Prepare the Q1 report",
		DueDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, assignment.AssignerID)
	assert.Equal(t, admin.ID, *assignment.AssignerID)
	assert.Equal(t, models.WorkPending, assignment.Status)
	assert.False(t, assignment.AssignDate.IsZero())
}

func TestCreateUnknownTasker(t *testing.T) {
	db := setupDB(t)
	admin := seedAdmin(t, db)
	svc := NewWorkService(db)

	_, err := svc.Create(admin.ID, WorkInput{
		TaskerID:    999,
		Title:       "Ghost task",
		Description: "x",
		DueDate:     time.Now().UTC(),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusScopedByOwnership(t *testing.T) {
	db := setupDB(t)
	admin := seedAdmin(t, db)
	alice := provisionTestEmployee(t, db, "alice", "E100")
	bob := provisionTestEmployee(t, db, "bob", "E200")
	svc := NewWorkService(db)

	assignment, err := svc.Create(admin.ID, WorkInput{
		TaskerID:    alice.ID,
		Title:       "Report",
		Description: "x",
		DueDate:     time.Now().UTC(),
	})
	require.NoError(t, err)

	// Bob cannot touch Alice's task; the error is not-found, not forbidden.
	err = svc.UpdateStatus(bob.ID, assignment.ID, models.WorkInProgress)
	assert.ErrorIs(t, err, ErrNotFound)

	reloaded, err := svc.GetByID(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkPending, reloaded.Status)
}

func TestUpdateStatusValidation(t *testing.T) {
	db := setupDB(t)
	admin := seedAdmin(t, db)
	alice := provisionTestEmployee(t, db, "alice", "E100")
	svc := NewWorkService(db)

	assignment, err := svc.Create(admin.ID, WorkInput{
		TaskerID:    alice.ID,
		Title:       "Report",
		Description: "x",
		DueDate:     time.Now().UTC(),
	})
	require.NoError(t, err)

	err = svc.UpdateStatus(alice.ID, assignment.ID, models.WorkStatus("DONE"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	require.NoError(t, svc.UpdateStatus(alice.ID, assignment.ID, models.WorkCompleted))

	// No transition restrictions: going back to PENDING is allowed.
	require.NoError(t, svc.UpdateStatus(alice.ID, assignment.ID, models.WorkPending))

	reloaded, err := svc.GetByID(assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WorkPending, reloaded.Status)
}

func TestUpdatePreservesAssignerAndAssignDate(t *testing.T) {
	db := setupDB(t)
	admin := seedAdmin(t, db)
	alice := provisionTestEmployee(t, db, "alice", "E100")
	svc := NewWorkService(db)

	assignment, err := svc.Create(admin.ID, WorkInput{
		TaskerID:    alice.ID,
		Title:       "Report",
		Description: "x",
		DueDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	originalAssignDate := assignment.AssignDate

	updated, err := svc.Update(assignment.ID, WorkInput{
		TaskerID:    alice.ID,
		Title:       "Updated report",
		Description: "y",
		DueDate:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}, models.WorkInProgress)
	require.NoError(t, err)

	assert.Equal(t, "Updated report", updated.Title)
	assert.Equal(t, models.WorkInProgress, updated.Status)
	require.NotNil(t, updated.AssignerID)
	assert.Equal(t, admin.ID, *updated.AssignerID)
	assert.WithinDuration(t, originalAssignDate, updated.AssignDate, time.Second)
}

func TestListForEmployeeNewestFirst(t *testing.T) {
	db := setupDB(t)
	admin := seedAdmin(t, db)
	alice := provisionTestEmployee(t, db, "alice", "E100")
	svc := NewWorkService(db)

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(admin.ID, WorkInput{
			TaskerID:    alice.ID,
			Title:       title,
			Description: "x",
			DueDate:     time.Now().UTC(),
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	tasks, err := svc.ListForEmployee(alice.ID, 2)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "third", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
}
