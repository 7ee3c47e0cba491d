package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/ucms-api/internal/models"
	appErrors "github.com/campusops/ucms-api/pkg/errors"
)

func TestStudentCreateDefaultsToActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	student := &models.Student{
		FirstName:   "Frank",
		LastName:    "Miller",
		Email:       "frank.m@university.edu",
		DateOfBirth: time.Date(2002, time.March, 14, 0, 0, 0, 0, time.UTC),
		ProgramID:   1,
	}
	mock.ExpectQuery(`INSERT INTO students`).
		WithArgs(student.FirstName, student.LastName, student.Email, student.DateOfBirth, student.ProgramID, models.StudentStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))

	id, err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
	assert.Equal(t, int64(6), student.ID)
	assert.Equal(t, models.StudentStatusActive, student.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentCreateDuplicateEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(`INSERT INTO students`).
		WillReturnError(&pq.Error{Code: pq.ErrorCode(pqUniqueViolation), Constraint: "students_email_key"})

	_, err := repo.Create(context.Background(), &models.Student{
		FirstName:   "Frank",
		LastName:    "Miller",
		Email:       "frank.m@university.edu",
		DateOfBirth: time.Date(2002, time.March, 14, 0, 0, 0, 0, time.UTC),
		ProgramID:   1,
	})
	assert.ErrorIs(t, err, appErrors.ErrConstraintViolation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentFindByIDIncludesProgramContext(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	columns := []string{"id", "first_name", "last_name", "email", "date_of_birth", "program_id", "status", "program_name", "department_name"}
	mock.ExpectQuery(`SELECT s.id, s.first_name`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "Alice", "Johnson", "alice.j@university.edu",
				time.Date(2000, time.May, 15, 0, 0, 0, 0, time.UTC), 1, "Active",
				"BSc Computer Science", "Computer Science"))

	detail, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", detail.FirstName)
	assert.Equal(t, "BSc Computer Science", detail.ProgramName)
	assert.Equal(t, "Computer Science", detail.DepartmentName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentUpdateStatusUnknownID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(`UPDATE students SET status = \$2 WHERE id = \$1`).
		WithArgs(int64(99), models.StudentStatusGraduated).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 99, models.StudentStatusGraduated)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
