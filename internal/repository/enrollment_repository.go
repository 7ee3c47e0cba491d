package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campusops/ucms-api/internal/models"
	appErrors "github.com/campusops/ucms-api/pkg/errors"
)

// Postgres SQLSTATE codes surfaced as typed domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// EnrollmentRepository performs the state-changing enrollment operations.
// Every mutation runs begin -> check -> mutate -> commit; any failed check
// rolls the transaction back before the error is surfaced.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Enroll registers a student into an offering and returns the new enrollment
// ID. The capacity read locks the offering row so concurrent enrollments
// against the same offering serialise and cannot overshoot max_students. The
// seat counter is incremented in the same transaction as the insert.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, offeringID int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin enroll: %w", err)
	}

	var capacity models.OfferingCapacity
	const capacityQuery = `SELECT max_students, current_enrollment FROM course_offerings WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &capacity, capacityQuery, offeringID); err != nil {
		tx.Rollback() //nolint:errcheck
		if errors.Is(err, sql.ErrNoRows) {
			return 0, appErrors.Clone(appErrors.ErrNotFound, "course offering not found")
		}
		return 0, fmt.Errorf("fetch offering capacity: %w", err)
	}
	if capacity.CurrentEnrollment >= capacity.MaxStudents {
		tx.Rollback() //nolint:errcheck
		return 0, appErrors.ErrCapacityExceeded
	}

	var exists int
	const duplicateQuery = `SELECT 1 FROM enrollments WHERE student_id = $1 AND offering_id = $2 LIMIT 1`
	err = tx.GetContext(ctx, &exists, duplicateQuery, studentID, offeringID)
	switch {
	case err == nil:
		tx.Rollback() //nolint:errcheck
		return 0, appErrors.ErrDuplicateEnrollment
	case !errors.Is(err, sql.ErrNoRows):
		tx.Rollback() //nolint:errcheck
		return 0, fmt.Errorf("check duplicate enrollment: %w", err)
	}

	var enrollmentID int64
	const insertQuery = `INSERT INTO enrollments (student_id, offering_id, status) VALUES ($1, $2, $3) RETURNING id`
	if err := tx.GetContext(ctx, &enrollmentID, insertQuery, studentID, offeringID, models.EnrollmentStatusEnrolled); err != nil {
		tx.Rollback() //nolint:errcheck
		// The unique (student_id, offering_id) constraint closes the race the
		// pre-check cannot see from a concurrent uncommitted insert.
		if isUniqueViolation(err) {
			return 0, appErrors.Wrap(err, appErrors.ErrDuplicateEnrollment.Code, appErrors.ErrDuplicateEnrollment.Message)
		}
		return 0, translateConstraint(err, "insert enrollment")
	}

	const incrementQuery = `UPDATE course_offerings SET current_enrollment = current_enrollment + 1 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, incrementQuery, offeringID); err != nil {
		tx.Rollback() //nolint:errcheck
		return 0, fmt.Errorf("increment enrollment counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit enroll: %w", err)
	}
	return enrollmentID, nil
}

// UpdateGrade records a grade and marks the enrollment Completed. Grade
// updates are idempotent overwrites; re-grading an already-completed or
// withdrawn enrollment is allowed.
func (r *EnrollmentRepository) UpdateGrade(ctx context.Context, enrollmentID int64, grade models.Grade) error {
	const query = `UPDATE enrollments SET grade = $2, status = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, enrollmentID, grade, models.EnrollmentStatusCompleted)
	if err != nil {
		return translateConstraint(err, "update grade")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update grade rows affected: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return nil
}

// Withdraw marks an Enrolled row Withdrawn with grade W. Rows already
// completed or withdrawn do not match, which surfaces as not-found. The
// seat counter intentionally keeps the withdrawn student's slot: it tracks
// ever-enrolled count, not currently-active count.
func (r *EnrollmentRepository) Withdraw(ctx context.Context, enrollmentID int64) error {
	const query = `UPDATE enrollments SET status = $2, grade = $3 WHERE id = $1 AND status = $4`
	result, err := r.db.ExecContext(ctx, query, enrollmentID, models.EnrollmentStatusWithdrawn, models.GradeW, models.EnrollmentStatusEnrolled)
	if err != nil {
		return fmt.Errorf("withdraw enrollment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("withdraw rows affected: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found or already completed")
	}
	return nil
}

// FindByID returns an enrollment by its ID.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	const query = `SELECT id, student_id, offering_id, status, grade FROM enrollments WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

// translateConstraint maps store constraint rejections onto the typed
// taxonomy so callers can branch on condition instead of message text.
func translateConstraint(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return appErrors.Wrap(err, appErrors.ErrConstraintViolation.Code, "duplicate value for unique column")
		case pqForeignKeyViolation:
			return appErrors.Wrap(err, appErrors.ErrConstraintViolation.Code, "referenced entity does not exist")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}
