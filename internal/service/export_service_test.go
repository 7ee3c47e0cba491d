package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/ucms-api/internal/models"
	appErrors "github.com/campusops/ucms-api/pkg/errors"
	"github.com/campusops/ucms-api/pkg/storage"
)

type stubTranscriptSource struct {
	entries []models.TranscriptEntry
	err     error
}

func (s *stubTranscriptSource) Transcript(ctx context.Context, studentID int64) ([]models.TranscriptEntry, error) {
	return s.entries, s.err
}

func sampleTranscript() []models.TranscriptEntry {
	gradeA := models.GradeA
	pointsA := 4.0
	return []models.TranscriptEntry{
		{
			CourseCode:  "CS101",
			CourseName:  "Introduction to Programming",
			Credits:     3,
			Term:        "Fall 2023",
			Instructor:  "Alan Turner",
			Grade:       &gradeA,
			GradePoints: &pointsA,
		},
		{
			CourseCode: "MATH201",
			CourseName: "Calculus II",
			Credits:    4,
			Term:       "Spring 2024",
			Instructor: "Grace Hopkins",
		},
	}
}

func newExportFixture(t *testing.T, source transcriptSource) (*ExportService, string) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewExportService(source, store, nil), dir
}

func TestExportTranscriptWritesCSV(t *testing.T) {
	svc, dir := newExportFixture(t, &stubTranscriptSource{entries: sampleTranscript()})

	path, err := svc.ExportTranscript(context.Background(), 1, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".csv"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}
	assert.Equal(t, "Course Code,Course Name,Credits,Term,Instructor,Grade,Grade Points", lines[0])
	assert.Equal(t, "CS101,Introduction to Programming,3,Fall 2023,Alan Turner,A,4.0", lines[1])
	assert.Equal(t, "MATH201,Calculus II,4,Spring 2024,Grace Hopkins,,", lines[2])
}

func TestExportTranscriptWritesPDF(t *testing.T) {
	svc, _ := newExportFixture(t, &stubTranscriptSource{entries: sampleTranscript()})

	path, err := svc.ExportTranscript(context.Background(), 1, ExportFormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
}

func TestExportTranscriptRejectsUnknownFormat(t *testing.T) {
	svc, _ := newExportFixture(t, &stubTranscriptSource{entries: sampleTranscript()})

	_, err := svc.ExportTranscript(context.Background(), 1, "xlsx")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestExportTranscriptPropagatesSourceError(t *testing.T) {
	svc, _ := newExportFixture(t, &stubTranscriptSource{err: appErrors.ErrNotFound})

	_, err := svc.ExportTranscript(context.Background(), 9, ExportFormatCSV)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestPruneExportsRemovesStaleArtifacts(t *testing.T) {
	svc, _ := newExportFixture(t, &stubTranscriptSource{entries: sampleTranscript()})

	stale, err := svc.ExportTranscript(context.Background(), 1, ExportFormatCSV)
	require.NoError(t, err)
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	fresh, err := svc.ExportTranscript(context.Background(), 2, ExportFormatCSV)
	require.NoError(t, err)

	deleted, err := svc.PruneExports(24 * time.Hour)
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}

func TestPruneExportsRequiresPositiveWindow(t *testing.T) {
	svc, _ := newExportFixture(t, &stubTranscriptSource{})

	_, err := svc.PruneExports(0)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
