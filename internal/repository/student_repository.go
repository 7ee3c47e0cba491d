package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/ucms-api/internal/models"
	appErrors "github.com/campusops/ucms-api/pkg/errors"
)

// StudentRepository handles persistence of student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create persists a new student and returns the assigned ID. Duplicate email
// and missing program surface as constraint violations.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	if student.Status == "" {
		student.Status = models.StudentStatusActive
	}
	const query = `INSERT INTO students (first_name, last_name, email, date_of_birth, program_id, status)
        VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int64
	err := r.db.GetContext(ctx, &id, query,
		student.FirstName, student.LastName, student.Email, student.DateOfBirth, student.ProgramID, student.Status)
	if err != nil {
		return 0, translateConstraint(err, "create student")
	}
	student.ID = id
	return id, nil
}

// FindByID returns a student with program and department context.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	const query = `SELECT s.id, s.first_name, s.last_name, s.email, s.date_of_birth, s.program_id, s.status,
        p.name AS program_name, d.name AS department_name
    FROM students s
    JOIN programs p ON s.program_id = p.id
    JOIN departments d ON p.department_id = d.id
    WHERE s.id = $1`
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &detail, nil
}

// UpdateStatus mutates the student lifecycle status.
func (r *StudentRepository) UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error {
	const query = `UPDATE students SET status = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update student status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update student status rows affected: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return nil
}
