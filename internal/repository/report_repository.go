package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/ucms-api/internal/models"
)

// gradePointsCase maps letter grades onto grade points inside SQL. Grades
// outside the A-F scale (P, W) yield NULL and drop out of averages.
const gradePointsCase = `CASE e.grade
        WHEN 'A' THEN 4.0
        WHEN 'B' THEN 3.0
        WHEN 'C' THEN 2.0
        WHEN 'D' THEN 1.0
        WHEN 'F' THEN 0.0
        ELSE NULL
    END`

// ReportRepository exposes the read-only derived views over committed state.
// Each method issues a single consistent query; empty results are a normal
// outcome, never an error.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository instantiates the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Transcript returns a student's enrollments ordered by year, semester,
// then course code.
func (r *ReportRepository) Transcript(ctx context.Context, studentID int64) ([]models.TranscriptEntry, error) {
	query := fmt.Sprintf(`SELECT
        c.code AS course_code,
        c.name AS course_name,
        c.credits,
        co.semester || ' ' || co.year AS term,
        i.first_name || ' ' || i.last_name AS instructor,
        e.grade,
        %s AS grade_points
    FROM enrollments e
    JOIN course_offerings co ON e.offering_id = co.id
    JOIN courses c ON co.course_id = c.id
    JOIN instructors i ON co.instructor_id = i.id
    WHERE e.student_id = $1
    ORDER BY co.year, co.semester, c.code`, gradePointsCase)

	var entries []models.TranscriptEntry
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	return entries, nil
}

// GPA aggregates a student's graded enrollments. The average is unweighted:
// each graded course contributes its grade points once regardless of credit
// weight. No graded enrollments yields a nil GPA, not zero.
func (r *ReportRepository) GPA(ctx context.Context, studentID int64) (*models.GPASummary, error) {
	query := fmt.Sprintf(`SELECT
        COUNT(e.id) AS courses_completed,
        SUM(c.credits) AS total_credits,
        ROUND(AVG(%s), 2) AS gpa
    FROM enrollments e
    JOIN course_offerings co ON e.offering_id = co.id
    JOIN courses c ON co.course_id = c.id
    WHERE e.student_id = $1 AND e.grade IS NOT NULL`, gradePointsCase)

	var summary models.GPASummary
	if err := r.db.GetContext(ctx, &summary, query, studentID); err != nil {
		return nil, fmt.Errorf("query gpa: %w", err)
	}
	return &summary, nil
}

// AvailableCourses lists offerings for a term with remaining seats and a
// three-way availability status, ordered by course code.
func (r *ReportRepository) AvailableCourses(ctx context.Context, semester string, year int) ([]models.CourseAvailability, error) {
	const query = `SELECT
        co.id AS offering_id,
        c.code AS course_code,
        c.name AS course_name,
        c.credits,
        c.level,
        i.first_name || ' ' || i.last_name AS instructor_name,
        co.room,
        co.max_students,
        co.current_enrollment,
        (co.max_students - co.current_enrollment) AS available_seats,
        CASE
            WHEN co.current_enrollment >= co.max_students THEN 'Full'
            WHEN co.current_enrollment >= co.max_students * 0.9 THEN 'Almost Full'
            ELSE 'Available'
        END AS status
    FROM course_offerings co
    JOIN courses c ON co.course_id = c.id
    JOIN instructors i ON co.instructor_id = i.id
    WHERE co.semester = $1 AND co.year = $2
    ORDER BY c.code`

	var offerings []models.CourseAvailability
	if err := r.db.SelectContext(ctx, &offerings, query, semester, year); err != nil {
		return nil, fmt.Errorf("query available courses: %w", err)
	}
	return offerings, nil
}

// CourseEnrollmentStats returns per-offering fill rates and grade
// distribution buckets for a course, newest term first.
func (r *ReportRepository) CourseEnrollmentStats(ctx context.Context, courseID int64) ([]models.OfferingStats, error) {
	const query = `SELECT
        co.semester || ' ' || co.year AS term,
        co.max_students,
        co.current_enrollment,
        ROUND(co.current_enrollment::numeric / co.max_students * 100, 1) AS fill_rate,
        COUNT(e.id) AS total_enrollments,
        COUNT(CASE WHEN e.grade = 'A' THEN 1 END) AS grade_a,
        COUNT(CASE WHEN e.grade = 'B' THEN 1 END) AS grade_b,
        COUNT(CASE WHEN e.grade = 'C' THEN 1 END) AS grade_c,
        COUNT(CASE WHEN e.grade IN ('D', 'F') THEN 1 END) AS grade_df
    FROM course_offerings co
    LEFT JOIN enrollments e ON co.id = e.offering_id
    WHERE co.course_id = $1
    GROUP BY co.id, co.semester, co.year, co.max_students, co.current_enrollment
    ORDER BY co.year DESC, co.semester`

	var stats []models.OfferingStats
	if err := r.db.SelectContext(ctx, &stats, query, courseID); err != nil {
		return nil, fmt.Errorf("query course enrollment stats: %w", err)
	}
	return stats, nil
}

// DepartmentSummary counts distinct programs, courses, instructors and
// students per department. Departments with no matches still appear with
// zero counts.
func (r *ReportRepository) DepartmentSummary(ctx context.Context) ([]models.DepartmentSummary, error) {
	const query = `SELECT
        d.name AS department_name,
        COUNT(DISTINCT p.id) AS total_programs,
        COUNT(DISTINCT c.id) AS total_courses,
        COUNT(DISTINCT i.id) AS total_instructors,
        COUNT(DISTINCT s.id) AS total_students
    FROM departments d
    LEFT JOIN programs p ON d.id = p.department_id
    LEFT JOIN courses c ON d.id = c.department_id
    LEFT JOIN instructors i ON d.id = i.department_id
    LEFT JOIN students s ON p.id = s.program_id
    GROUP BY d.id, d.name
    ORDER BY total_students DESC`

	var summaries []models.DepartmentSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("query department summary: %w", err)
	}
	return summaries, nil
}

// SemesterReport produces the term-wide aggregate row. With no offerings for
// the term the capacity sums and fill rate come back NULL.
func (r *ReportRepository) SemesterReport(ctx context.Context, semester string, year int) (*models.SemesterReport, error) {
	const query = `SELECT
        COUNT(DISTINCT co.id) AS courses_offered,
        COUNT(DISTINCT e.student_id) AS unique_students,
        COUNT(e.id) AS total_enrollments,
        SUM(co.max_students) AS total_capacity,
        SUM(co.current_enrollment) AS total_enrolled,
        ROUND(SUM(co.current_enrollment)::numeric / SUM(co.max_students) * 100, 1) AS overall_fill_rate
    FROM course_offerings co
    LEFT JOIN enrollments e ON co.id = e.offering_id
    WHERE co.semester = $1 AND co.year = $2`

	var report models.SemesterReport
	if err := r.db.GetContext(ctx, &report, query, semester, year); err != nil {
		return nil, fmt.Errorf("query semester report: %w", err)
	}
	return &report, nil
}

// StudentsAtRisk lists active students whose rounded GPA is strictly below
// the threshold, lowest first. Students with only P/W or no grades average
// to NULL and never satisfy the comparison.
func (r *ReportRepository) StudentsAtRisk(ctx context.Context, gpaThreshold float64) ([]models.AtRiskStudent, error) {
	query := fmt.Sprintf(`SELECT
        s.id AS student_id,
        s.first_name || ' ' || s.last_name AS student_name,
        s.email,
        p.name AS program_name,
        COUNT(e.id) AS courses_completed,
        ROUND(AVG(%[1]s), 2) AS gpa,
        COUNT(CASE WHEN e.grade = 'F' THEN 1 END) AS failed_courses
    FROM students s
    JOIN programs p ON s.program_id = p.id
    JOIN enrollments e ON s.id = e.student_id
    WHERE e.grade IS NOT NULL AND s.status = $1
    GROUP BY s.id, s.first_name, s.last_name, s.email, p.name
    HAVING ROUND(AVG(%[1]s), 2) < $2
    ORDER BY gpa ASC`, gradePointsCase)

	var students []models.AtRiskStudent
	if err := r.db.SelectContext(ctx, &students, query, models.StudentStatusActive, gpaThreshold); err != nil {
		return nil, fmt.Errorf("query students at risk: %w", err)
	}
	return students, nil
}
