package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "growmate/internal/errors"
)

func TestTaskRepository_MarkCompletedOnlyOnFirstTransition(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	update := q("UPDATE `garden_tasks` SET `is_completed`=? WHERE id = ? AND is_completed = ?")
	mock.ExpectExec(update).
		WithArgs(true, "task-1", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(update).
		WithArgs(true, "task-1", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	changed, err := repo.MarkCompleted(ctx, "task-1")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkCompleted(ctx, "task-1")
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(q("SELECT * FROM `garden_tasks` WHERE id = ? ORDER BY `garden_tasks`.`id` LIMIT ?")).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	task, err := repo.FindByID(context.Background(), "missing")
	assert.Nil(t, task)
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindByIDScansInterval(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "task_name", "plant_id", "is_completed", "task_type", "recurrence_interval"}).
		AddRow("task-1", "user-1", "Water roses", "plant-1", false, "Watering", int64(3600000000000))
	mock.ExpectQuery(q("SELECT * FROM `garden_tasks` WHERE id = ?")).
		WithArgs("task-1", 1).
		WillReturnRows(rows)

	task, err := repo.FindByID(context.Background(), "task-1")
	require.NoError(t, err)
	require.NotNil(t, task.RecurrenceInterval)
	assert.Equal(t, "01:00:00", task.RecurrenceInterval.String())
	assert.True(t, task.Recurs())
}

func TestTaskRepository_DeleteReportsNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	del := q("DELETE FROM `garden_tasks` WHERE id = ?")
	mock.ExpectExec(del).WithArgs("task-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(del).WithArgs("task-1").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(ctx, "task-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "task-1"), apperrors.ErrTaskNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
