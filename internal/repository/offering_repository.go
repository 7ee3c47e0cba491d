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

// OfferingRepository handles course offering setup.
type OfferingRepository struct {
	db *sqlx.DB
}

// NewOfferingRepository constructs the repository.
func NewOfferingRepository(db *sqlx.DB) *OfferingRepository {
	return &OfferingRepository{db: db}
}

// Create schedules a new offering with an empty roster. The referenced
// course and instructor must already exist.
func (r *OfferingRepository) Create(ctx context.Context, offering *models.CourseOffering) (int64, error) {
	var refs struct {
		CourseExists     bool `db:"course_exists"`
		InstructorExists bool `db:"instructor_exists"`
	}
	const verifyQuery = `SELECT
        EXISTS (SELECT 1 FROM courses WHERE id = $1) AS course_exists,
        EXISTS (SELECT 1 FROM instructors WHERE id = $2) AS instructor_exists`
	if err := r.db.GetContext(ctx, &refs, verifyQuery, offering.CourseID, offering.InstructorID); err != nil {
		return 0, fmt.Errorf("verify offering references: %w", err)
	}
	if !refs.CourseExists {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	if !refs.InstructorExists {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "instructor not found")
	}

	const insertQuery = `INSERT INTO course_offerings (course_id, instructor_id, semester, year, room, max_students, current_enrollment)
        VALUES ($1, $2, $3, $4, $5, $6, 0) RETURNING id`
	var id int64
	err := r.db.GetContext(ctx, &id, insertQuery,
		offering.CourseID, offering.InstructorID, offering.Semester, offering.Year, offering.Room, offering.MaxStudents)
	if err != nil {
		return 0, translateConstraint(err, "create offering")
	}
	offering.ID = id
	offering.CurrentEnrollment = 0
	return id, nil
}

// FindByID returns an offering by its ID.
func (r *OfferingRepository) FindByID(ctx context.Context, id int64) (*models.CourseOffering, error) {
	const query = `SELECT id, course_id, instructor_id, semester, year, room, max_students, current_enrollment
        FROM course_offerings WHERE id = $1`
	var offering models.CourseOffering
	if err := r.db.GetContext(ctx, &offering, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course offering not found")
		}
		return nil, fmt.Errorf("find offering: %w", err)
	}
	return &offering, nil
}
