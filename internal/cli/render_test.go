package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusops/ucms-api/internal/models"
	"github.com/campusops/ucms-api/internal/service"
)

func TestPrintMetricsSnapshotShowsRecordedActivity(t *testing.T) {
	metrics := service.NewMetricsService()
	metrics.RecordTransaction("enroll", true)
	metrics.RecordTransaction("enroll", false)
	metrics.ObserveDBQuery("transcript", 4*time.Millisecond)
	metrics.RecordCacheLookup(true)

	buf := &bytes.Buffer{}
	printMetricsSnapshot(buf, metrics.Snapshot())

	out := buf.String()
	assert.Contains(t, out, "transactions committed:   1")
	assert.Contains(t, out, "transactions rolled back: 1")
	assert.Contains(t, out, "db queries:               1")
	assert.Contains(t, out, "(1 hits / 0 misses)")
}

func TestAvailabilityRowsCarryEveryColumn(t *testing.T) {
	offerings := []models.CourseAvailability{{
		OfferingID:        3,
		CourseCode:        "CS101",
		CourseName:        "Introduction to Programming",
		Credits:           3,
		Level:             "Undergraduate",
		InstructorName:    "Grace Hopkins",
		Room:              "A-102",
		MaxStudents:       40,
		CurrentEnrollment: 1,
		AvailableSeats:    39,
		Status:            models.AvailabilityAvailable,
	}}

	rows := availabilityRows(offerings)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(availabilityHeaders))
	assert.Equal(t, "Undergraduate", rows[0][4])
	assert.Equal(t, "Level", availabilityHeaders[4])
}
