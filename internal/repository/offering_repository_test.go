package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/ucms-api/internal/models"
	appErrors "github.com/campusops/ucms-api/pkg/errors"
)

func TestOfferingCreateStartsEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferingRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"course_exists", "instructor_exists"}).AddRow(true, true))
	mock.ExpectQuery(`INSERT INTO course_offerings`).
		WithArgs(int64(1), int64(2), "Fall", 2024, "Science 301", 30).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	offering := &models.CourseOffering{
		CourseID:     1,
		InstructorID: 2,
		Semester:     "Fall",
		Year:         2024,
		Room:         "Science 301",
		MaxStudents:  30,
	}
	id, err := repo.Create(context.Background(), offering)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Zero(t, offering.CurrentEnrollment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferingCreateUnknownCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferingRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(99), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"course_exists", "instructor_exists"}).AddRow(false, true))

	_, err := repo.Create(context.Background(), &models.CourseOffering{
		CourseID:     99,
		InstructorID: 2,
		Semester:     "Fall",
		Year:         2024,
		Room:         "Science 301",
		MaxStudents:  30,
	})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferingFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOfferingRepository(db)

	columns := []string{"id", "course_id", "instructor_id", "semester", "year", "room", "max_students", "current_enrollment"}
	mock.ExpectQuery(`SELECT id, course_id, instructor_id`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, 1, 2, "Spring", 2024, "Science 302", 25, 25))

	offering, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 25, offering.MaxStudents)
	assert.Equal(t, 25, offering.CurrentEnrollment)
	require.NoError(t, mock.ExpectationsWereMet())
}
