package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campusops/ucms-api/internal/models"
)

const reportCacheKeyPrefix = "reports:"

// ReportRepository describes the persistence layer required by RecordsService.
type ReportRepository interface {
	Transcript(ctx context.Context, studentID int64) ([]models.TranscriptEntry, error)
	GPA(ctx context.Context, studentID int64) (*models.GPASummary, error)
	AvailableCourses(ctx context.Context, semester string, year int) ([]models.CourseAvailability, error)
	CourseEnrollmentStats(ctx context.Context, courseID int64) ([]models.OfferingStats, error)
	DepartmentSummary(ctx context.Context) ([]models.DepartmentSummary, error)
	SemesterReport(ctx context.Context, semester string, year int) (*models.SemesterReport, error)
	StudentsAtRisk(ctx context.Context, gpaThreshold float64) ([]models.AtRiskStudent, error)
}

// RecordsService provides the read-only academic record aggregations with
// optional cache integration. Empty results are normal outcomes.
type RecordsService struct {
	repo    ReportRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
}

// NewRecordsService constructs a records service.
func NewRecordsService(repo ReportRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *RecordsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsService{repo: repo, cache: cache, metrics: metrics, logger: logger}
}

// Transcript returns the ordered course history for a student.
func (s *RecordsService) Transcript(ctx context.Context, studentID int64) ([]models.TranscriptEntry, error) {
	key := makeReportCacheKey("transcript", fmt.Sprint(studentID))
	var cached []models.TranscriptEntry
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	entries, err := s.repo.Transcript(ctx, studentID)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("transcript", time.Since(start))
	s.cache.Set(ctx, key, entries)
	return entries, nil
}

// GPA returns the graded-course aggregate for a student. A student with no
// graded enrollments gets zero counts and a nil GPA.
func (s *RecordsService) GPA(ctx context.Context, studentID int64) (*models.GPASummary, error) {
	key := makeReportCacheKey("gpa", fmt.Sprint(studentID))
	var cached models.GPASummary
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	summary, err := s.repo.GPA(ctx, studentID)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("gpa", time.Since(start))
	s.cache.Set(ctx, key, summary)
	return summary, nil
}

// AvailableCourses lists seat availability for a term.
func (s *RecordsService) AvailableCourses(ctx context.Context, semester string, year int) ([]models.CourseAvailability, error) {
	key := makeReportCacheKey("available", semester, fmt.Sprint(year))
	var cached []models.CourseAvailability
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	offerings, err := s.repo.AvailableCourses(ctx, semester, year)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("available_courses", time.Since(start))
	s.cache.Set(ctx, key, offerings)
	return offerings, nil
}

// CourseEnrollmentStats returns fill rates and grade distribution for every
// offering of a course.
func (s *RecordsService) CourseEnrollmentStats(ctx context.Context, courseID int64) ([]models.OfferingStats, error) {
	key := makeReportCacheKey("course_stats", fmt.Sprint(courseID))
	var cached []models.OfferingStats
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	stats, err := s.repo.CourseEnrollmentStats(ctx, courseID)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("course_enrollment_stats", time.Since(start))
	s.cache.Set(ctx, key, stats)
	return stats, nil
}

// DepartmentSummary returns per-department counts including zero-count
// departments.
func (s *RecordsService) DepartmentSummary(ctx context.Context) ([]models.DepartmentSummary, error) {
	key := makeReportCacheKey("departments")
	var cached []models.DepartmentSummary
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	summaries, err := s.repo.DepartmentSummary(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("department_summary", time.Since(start))
	s.cache.Set(ctx, key, summaries)
	return summaries, nil
}

// SemesterEnrollmentReport returns the single aggregate row for a term.
func (s *RecordsService) SemesterEnrollmentReport(ctx context.Context, semester string, year int) (*models.SemesterReport, error) {
	key := makeReportCacheKey("semester", semester, fmt.Sprint(year))
	var cached models.SemesterReport
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	report, err := s.repo.SemesterReport(ctx, semester, year)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("semester_report", time.Since(start))
	s.cache.Set(ctx, key, report)
	return report, nil
}

// StudentsAtRisk lists active students with a GPA strictly below the
// threshold, lowest GPA first.
func (s *RecordsService) StudentsAtRisk(ctx context.Context, gpaThreshold float64) ([]models.AtRiskStudent, error) {
	key := makeReportCacheKey("at_risk", fmt.Sprintf("%.2f", gpaThreshold))
	var cached []models.AtRiskStudent
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	start := time.Now()
	students, err := s.repo.StudentsAtRisk(ctx, gpaThreshold)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("students_at_risk", time.Since(start))
	s.cache.Set(ctx, key, students)
	return students, nil
}

func makeReportCacheKey(parts ...string) string {
	return reportCacheKeyPrefix + strings.Join(parts, ":")
}
