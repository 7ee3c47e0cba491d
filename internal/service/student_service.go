package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusops/ucms-api/internal/models"
	appErrors "github.com/campusops/ucms-api/pkg/errors"
)

type studentStore interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error
}

type offeringStore interface {
	Create(ctx context.Context, offering *models.CourseOffering) (int64, error)
	FindByID(ctx context.Context, id int64) (*models.CourseOffering, error)
}

// AddStudentRequest describes an admission.
type AddStudentRequest struct {
	FirstName   string    `json:"first_name" validate:"required"`
	LastName    string    `json:"last_name" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
	ProgramID   int64     `json:"program_id" validate:"required,gt=0"`
}

// CreateOfferingRequest describes the administrative scheduling of a course
// offering before a term.
type CreateOfferingRequest struct {
	CourseID     int64  `json:"course_id" validate:"required,gt=0"`
	InstructorID int64  `json:"instructor_id" validate:"required,gt=0"`
	Semester     string `json:"semester" validate:"required"`
	Year         int    `json:"year" validate:"required,gte=1900"`
	Room         string `json:"room" validate:"required"`
	MaxStudents  int    `json:"max_students" validate:"required,gt=0"`
}

// StudentService handles admissions and offering setup.
type StudentService struct {
	students  studentStore
	offerings offeringStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs StudentService.
func NewStudentService(students studentStore, offerings offeringStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, offerings: offerings, validator: validate, logger: logger}
}

// AddStudent admits a new student and returns the assigned ID.
func (s *StudentService) AddStudent(ctx context.Context, req AddStudentRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid student payload")
	}
	student := &models.Student{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		ProgramID:   req.ProgramID,
		Status:      models.StudentStatusActive,
	}
	id, err := s.students.Create(ctx, student)
	if err != nil {
		return 0, err
	}
	s.logger.Info("student admitted", zap.Int64("student_id", id), zap.String("email", req.Email))
	return id, nil
}

// GetStudent returns a student with program and department context.
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.StudentDetail, error) {
	return s.students.FindByID(ctx, id)
}

// SetStudentStatus mutates a student's lifecycle status.
func (s *StudentService) SetStudentStatus(ctx context.Context, id int64, status models.StudentStatus) error {
	switch status {
	case models.StudentStatusActive, models.StudentStatusInactive, models.StudentStatusGraduated:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown student status")
	}
	return s.students.UpdateStatus(ctx, id, status)
}

// CreateOffering schedules a course offering with an empty roster.
func (s *StudentService) CreateOffering(ctx context.Context, req CreateOfferingRequest) (int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid offering payload")
	}
	offering := &models.CourseOffering{
		CourseID:     req.CourseID,
		InstructorID: req.InstructorID,
		Semester:     req.Semester,
		Year:         req.Year,
		Room:         req.Room,
		MaxStudents:  req.MaxStudents,
	}
	id, err := s.offerings.Create(ctx, offering)
	if err != nil {
		return 0, err
	}
	s.logger.Info("offering created",
		zap.Int64("offering_id", id),
		zap.Int64("course_id", req.CourseID),
		zap.String("semester", req.Semester),
		zap.Int("year", req.Year),
	)
	return id, nil
}

// GetOffering returns an offering by ID.
func (s *StudentService) GetOffering(ctx context.Context, id int64) (*models.CourseOffering, error) {
	return s.offerings.FindByID(ctx, id)
}
