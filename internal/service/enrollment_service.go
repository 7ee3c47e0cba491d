package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusops/ucms-api/internal/models"
	appErrors "github.com/campusops/ucms-api/pkg/errors"
)

type enrollmentStore interface {
	Enroll(ctx context.Context, studentID, offeringID int64) (int64, error)
	UpdateGrade(ctx context.Context, enrollmentID int64, grade models.Grade) error
	Withdraw(ctx context.Context, enrollmentID int64) error
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
}

// EnrollRequest describes an enrollment attempt.
type EnrollRequest struct {
	StudentID  int64 `json:"student_id" validate:"required,gt=0"`
	OfferingID int64 `json:"offering_id" validate:"required,gt=0"`
}

// UpdateGradeRequest describes a grade update.
type UpdateGradeRequest struct {
	EnrollmentID int64        `json:"enrollment_id" validate:"required,gt=0"`
	Grade        models.Grade `json:"grade" validate:"required"`
}

// EnrollmentService fronts the enrollment transaction engine: it validates
// input before any store access and surfaces typed errors callers can
// branch on.
type EnrollmentService struct {
	store     enrollmentStore
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(store enrollmentStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{store: store, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Enroll registers a student into a course offering and returns the new
// enrollment ID.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid enrollment payload")
	}
	enrollmentID, err := s.store.Enroll(ctx, req.StudentID, req.OfferingID)
	if err != nil {
		s.metrics.RecordTransaction("enroll", false)
		s.logger.Warn("enroll rejected",
			zap.Int64("student_id", req.StudentID),
			zap.Int64("offering_id", req.OfferingID),
			zap.String("code", appErrors.FromError(err).Code),
		)
		return 0, err
	}
	s.metrics.RecordTransaction("enroll", true)
	s.invalidateReports(ctx)
	s.logger.Info("student enrolled",
		zap.Int64("student_id", req.StudentID),
		zap.Int64("offering_id", req.OfferingID),
		zap.Int64("enrollment_id", enrollmentID),
	)
	return enrollmentID, nil
}

// UpdateGrade validates the grade against the allowed set before touching
// the store, then records it and marks the enrollment Completed.
func (s *EnrollmentService) UpdateGrade(ctx context.Context, req UpdateGradeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid grade payload")
	}
	if !req.Grade.Valid() {
		return appErrors.Clone(appErrors.ErrInvalidGrade, "grade must be one of A, B, C, D, F, P, W")
	}
	if err := s.store.UpdateGrade(ctx, req.EnrollmentID, req.Grade); err != nil {
		s.metrics.RecordTransaction("update_grade", false)
		return err
	}
	s.metrics.RecordTransaction("update_grade", true)
	s.invalidateReports(ctx)
	s.logger.Info("grade recorded",
		zap.Int64("enrollment_id", req.EnrollmentID),
		zap.String("grade", string(req.Grade)),
	)
	return nil
}

// Withdraw moves an Enrolled enrollment to Withdrawn with grade W.
func (s *EnrollmentService) Withdraw(ctx context.Context, enrollmentID int64) error {
	if enrollmentID <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "enrollment id required")
	}
	if err := s.store.Withdraw(ctx, enrollmentID); err != nil {
		s.metrics.RecordTransaction("withdraw", false)
		if errors.Is(err, appErrors.ErrNotFound) {
			s.logger.Warn("withdraw rejected", zap.Int64("enrollment_id", enrollmentID))
		}
		return err
	}
	s.metrics.RecordTransaction("withdraw", true)
	s.invalidateReports(ctx)
	s.logger.Info("student withdrawn", zap.Int64("enrollment_id", enrollmentID))
	return nil
}

// Get returns an enrollment by ID.
func (s *EnrollmentService) Get(ctx context.Context, enrollmentID int64) (*models.Enrollment, error) {
	return s.store.FindByID(ctx, enrollmentID)
}

// Mutations change what every report is derived from, so cached report
// payloads are dropped wholesale.
func (s *EnrollmentService) invalidateReports(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, reportCacheKeyPrefix+"*")
	}
}
