package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/campusops/ucms-api/internal/models"
	"github.com/campusops/ucms-api/internal/service"
)

// printMetricsSnapshot reports the counters accumulated by the current
// process so engine commands and the demo show what they just did.
func printMetricsSnapshot(w io.Writer, snap service.MetricsSnapshot) {
	fmt.Fprintf(w, "transactions committed:   %d\n", snap.TransactionsCommitted)
	fmt.Fprintf(w, "transactions rolled back: %d\n", snap.TransactionsRolledBack)
	fmt.Fprintf(w, "db queries:               %d (avg %.2f ms)\n", snap.DBQueries, snap.AvgDBQueryMillis)
	fmt.Fprintf(w, "cache hit ratio:          %.2f (%d hits / %d misses)\n", snap.CacheHitRatio, snap.CacheHits, snap.CacheMisses)
}

func renderTable(w io.Writer, headers []string, rows [][]interface{}) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		t.AppendRow(row)
	}
	t.Render()
}

func formatGrade(grade *models.Grade) string {
	if grade == nil {
		return "-"
	}
	return string(*grade)
}

func formatPoints(points *float64) string {
	if points == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *points)
}

func formatFloat(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *value)
}

func formatInt(value *int) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprint(*value)
}

func transcriptRows(entries []models.TranscriptEntry) [][]interface{} {
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{e.CourseCode, e.CourseName, e.Credits, e.Term, e.Instructor, formatGrade(e.Grade), formatPoints(e.GradePoints)})
	}
	return rows
}

func availabilityRows(offerings []models.CourseAvailability) [][]interface{} {
	rows := make([][]interface{}, 0, len(offerings))
	for _, o := range offerings {
		rows = append(rows, []interface{}{o.OfferingID, o.CourseCode, o.CourseName, o.Credits, o.Level, o.InstructorName, o.Room, o.MaxStudents, o.CurrentEnrollment, o.AvailableSeats, o.Status})
	}
	return rows
}

func offeringStatsRows(stats []models.OfferingStats) [][]interface{} {
	rows := make([][]interface{}, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []interface{}{s.Term, s.MaxStudents, s.CurrentEnrollment, fmt.Sprintf("%.1f%%", s.FillRate), s.TotalEnrollments, s.GradeA, s.GradeB, s.GradeC, s.GradeDF})
	}
	return rows
}

func departmentRows(summaries []models.DepartmentSummary) [][]interface{} {
	rows := make([][]interface{}, 0, len(summaries))
	for _, d := range summaries {
		rows = append(rows, []interface{}{d.DepartmentName, d.TotalPrograms, d.TotalCourses, d.TotalInstructors, d.TotalStudents})
	}
	return rows
}

func atRiskRows(students []models.AtRiskStudent) [][]interface{} {
	rows := make([][]interface{}, 0, len(students))
	for _, s := range students {
		rows = append(rows, []interface{}{s.StudentID, s.StudentName, s.Email, s.ProgramName, s.CoursesCompleted, fmt.Sprintf("%.2f", s.GPA), s.FailedCourses})
	}
	return rows
}

var (
	transcriptHeaders   = []string{"Code", "Course", "Credits", "Term", "Instructor", "Grade", "Points"}
	availabilityHeaders = []string{"ID", "Code", "Course", "Credits", "Level", "Instructor", "Room", "Max", "Enrolled", "Seats Left", "Status"}
	statsHeaders        = []string{"Term", "Max", "Enrolled", "Fill Rate", "Enrollments", "A", "B", "C", "D/F"}
	departmentHeaders   = []string{"Department", "Programs", "Courses", "Instructors", "Students"}
	atRiskHeaders       = []string{"ID", "Student", "Email", "Program", "Courses", "GPA", "Failed"}
)
