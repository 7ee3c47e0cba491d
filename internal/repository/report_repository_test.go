package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/campusops/ucms-api/internal/models"
)

func TestTranscriptMapsGradePoints(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"course_code", "course_name", "credits", "term", "instructor", "grade", "grade_points"}).
		AddRow("CS101", "Introduction to Programming", 3, "Fall 2023", "Alan Turner", "A", 4.0).
		AddRow("CS201", "Data Structures", 4, "Spring 2024", "Alan Turner", nil, nil).
		AddRow("MATH101", "Calculus I", 3, "Spring 2024", "Emmy North", "P", nil)
	mock.ExpectQuery(`FROM enrollments e JOIN course_offerings co ON e.offering_id = co.id`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	entries, err := repo.Transcript(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	require.NotNil(t, entries[0].GradePoints)
	require.Equal(t, 4.0, *entries[0].GradePoints)
	require.Nil(t, entries[1].Grade)
	require.Nil(t, entries[1].GradePoints)
	// P counts as a grade but carries no points.
	require.NotNil(t, entries[2].Grade)
	require.Nil(t, entries[2].GradePoints)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGPAUngradedStudentHasAbsentGPA(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"courses_completed", "total_credits", "gpa"}).
		AddRow(0, nil, nil)
	mock.ExpectQuery(`WHERE e.student_id = \$1 AND e.grade IS NOT NULL`).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	summary, err := repo.GPA(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 0, summary.CoursesCompleted)
	require.Nil(t, summary.TotalCredits)
	require.Nil(t, summary.GPA)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGPAGradedStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"courses_completed", "total_credits", "gpa"}).
		AddRow(3, 10, 3.00)
	mock.ExpectQuery(`WHERE e.student_id = \$1 AND e.grade IS NOT NULL`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	summary, err := repo.GPA(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 3, summary.CoursesCompleted)
	require.NotNil(t, summary.GPA)
	require.Equal(t, 3.00, *summary.GPA)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailableCoursesClassifiesSeats(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{
		"offering_id", "course_code", "course_name", "credits", "level",
		"instructor_name", "room", "max_students", "current_enrollment", "available_seats", "status",
	}).
		AddRow(6, "PHYS101", "Classical Mechanics", 4, "Undergraduate", "Richard Fenwick", "C-110", 2, 2, 0, models.AvailabilityFull).
		AddRow(3, "CS101", "Introduction to Programming", 3, "Undergraduate", "Grace Hopkins", "A-102", 40, 1, 39, models.AvailabilityAvailable)
	mock.ExpectQuery(`WHERE co.semester = \$1 AND co.year = \$2 ORDER BY c.code`).
		WithArgs("Spring", 2024).
		WillReturnRows(rows)

	offerings, err := repo.AvailableCourses(context.Background(), "Spring", 2024)
	require.NoError(t, err)
	require.Len(t, offerings, 2)
	require.Equal(t, models.AvailabilityFull, offerings[0].Status)
	require.Equal(t, 0, offerings[0].AvailableSeats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseEnrollmentStatsNewestTermFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{
		"term", "max_students", "current_enrollment", "fill_rate", "total_enrollments",
		"grade_a", "grade_b", "grade_c", "grade_df",
	}).
		AddRow("Spring 2024", 40, 1, 2.5, 1, 0, 0, 0, 0).
		AddRow("Fall 2023", 3, 3, 100.0, 3, 1, 0, 1, 1)
	mock.ExpectQuery(`WHERE co.course_id = \$1 GROUP BY co.id`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	stats, err := repo.CourseEnrollmentStats(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, "Spring 2024", stats[0].Term)
	require.Equal(t, 100.0, stats[1].FillRate)
	require.Equal(t, 1, stats[1].GradeDF)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentSummaryKeepsZeroCountDepartments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"department_name", "total_programs", "total_courses", "total_instructors", "total_students"}).
		AddRow("Computer Science", 2, 2, 2, 3).
		AddRow("History", 0, 0, 0, 0)
	mock.ExpectQuery(`FROM departments d LEFT JOIN programs p ON d.id = p.department_id`).
		WillReturnRows(rows)

	summaries, err := repo.DepartmentSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, 0, summaries[1].TotalStudents)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSemesterReportEmptyTermYieldsAbsentAggregates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{
		"courses_offered", "unique_students", "total_enrollments",
		"total_capacity", "total_enrolled", "overall_fill_rate",
	}).AddRow(0, 0, 0, nil, nil, nil)
	mock.ExpectQuery(`WHERE co.semester = \$1 AND co.year = \$2`).
		WithArgs("Summer", 2031).
		WillReturnRows(rows)

	report, err := repo.SemesterReport(context.Background(), "Summer", 2031)
	require.NoError(t, err)
	require.Equal(t, 0, report.CoursesOffered)
	require.Nil(t, report.TotalCapacity)
	require.Nil(t, report.OverallFillRate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentsAtRiskFiltersActiveAndThreshold(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "student_name", "email", "program_name", "courses_completed", "gpa", "failed_courses"}).
		AddRow(2, "Bob Brown", "bob.brown@student.univ.edu", "BSc Computer Science", 1, 0.00, 1).
		AddRow(3, "Carol Chen", "carol.chen@student.univ.edu", "BSc Mathematics", 2, 2.49, 0)
	mock.ExpectQuery(`HAVING ROUND\(AVG\(`).
		WithArgs(models.StudentStatusActive, 2.5).
		WillReturnRows(rows)

	students, err := repo.StudentsAtRisk(context.Background(), 2.5)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, 0.00, students[0].GPA)
	require.Equal(t, 1, students[0].FailedCourses)
	require.Equal(t, 2.49, students[1].GPA)
	require.NoError(t, mock.ExpectationsWereMet())
}
