package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campusops/ucms-api/internal/models"
	appErrors "github.com/campusops/ucms-api/pkg/errors"
	"github.com/campusops/ucms-api/pkg/export"
	"github.com/campusops/ucms-api/pkg/storage"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var transcriptHeaders = []string{"Course Code", "Course Name", "Credits", "Term", "Instructor", "Grade", "Grade Points"}

type transcriptSource interface {
	Transcript(ctx context.Context, studentID int64) ([]models.TranscriptEntry, error)
}

// ExportService renders transcripts into downloadable artifacts on disk.
type ExportService struct {
	records transcriptSource
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	storage *storage.LocalStorage
	logger  *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(records transcriptSource, store *storage.LocalStorage, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		records: records,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		storage: store,
		logger:  logger,
	}
}

// ExportTranscript renders the student's transcript in the requested format
// and stores it, returning the file path.
func (s *ExportService) ExportTranscript(ctx context.Context, studentID int64, format string) (string, error) {
	entries, err := s.records.Transcript(ctx, studentID)
	if err != nil {
		return "", err
	}

	dataset := transcriptDataset(entries)
	title := fmt.Sprintf("Transcript - Student %d", studentID)

	var payload []byte
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	if err != nil {
		return "", fmt.Errorf("render transcript: %w", err)
	}

	name := fmt.Sprintf("transcript-%d-%s.%s", studentID, uuid.NewString(), format)
	path, err := s.storage.Save(name, payload)
	if err != nil {
		return "", err
	}

	s.logger.Info("transcript exported",
		zap.Int64("student_id", studentID),
		zap.String("format", format),
		zap.String("path", path),
	)
	return path, nil
}

// PruneExports removes stored exports older than the retention window and
// returns the deleted names.
func (s *ExportService) PruneExports(olderThan time.Duration) ([]string, error) {
	if olderThan <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "retention window must be positive")
	}
	deleted, err := s.storage.CleanupOlderThan(olderThan)
	if err != nil {
		return nil, err
	}
	if len(deleted) > 0 {
		s.logger.Info("exports pruned", zap.Int("deleted", len(deleted)))
	}
	return deleted, nil
}

func transcriptDataset(entries []models.TranscriptEntry) export.Dataset {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		grade := ""
		if entry.Grade != nil {
			grade = string(*entry.Grade)
		}
		points := ""
		if entry.GradePoints != nil {
			points = fmt.Sprintf("%.1f", *entry.GradePoints)
		}
		rows = append(rows, []string{
			entry.CourseCode,
			entry.CourseName,
			fmt.Sprint(entry.Credits),
			entry.Term,
			entry.Instructor,
			grade,
			points,
		})
	}
	return export.Dataset{Headers: transcriptHeaders, Rows: rows}
}
