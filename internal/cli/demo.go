package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// newDemoCmd replays the classic demonstration sequence against the seeded
// sample data.
func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the demonstration walkthrough against sample data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			printHeader(out, "Student Information Lookup")
			student, err := a.students.GetStudent(ctx, 1)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Student ID: %d\n", student.ID)
			fmt.Fprintf(out, "Name:       %s %s\n", student.FirstName, student.LastName)
			fmt.Fprintf(out, "Email:      %s\n", student.Email)
			fmt.Fprintf(out, "Program:    %s\n", student.ProgramName)
			fmt.Fprintf(out, "Department: %s\n", student.DepartmentName)
			fmt.Fprintf(out, "Status:     %s\n", student.Status)

			printHeader(out, "Student Transcript")
			transcript, err := a.records.Transcript(ctx, 1)
			if err != nil {
				return err
			}
			renderTable(out, transcriptHeaders, transcriptRows(transcript))

			printHeader(out, "GPA Calculation")
			gpa, err := a.records.GPA(ctx, 1)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Courses Completed: %d\n", gpa.CoursesCompleted)
			fmt.Fprintf(out, "Total Credits:     %s\n", formatInt(gpa.TotalCredits))
			fmt.Fprintf(out, "GPA:               %s\n", formatFloat(gpa.GPA))

			printHeader(out, "Available Courses - Spring 2024")
			available, err := a.records.AvailableCourses(ctx, "Spring", 2024)
			if err != nil {
				return err
			}
			renderTable(out, availabilityHeaders, availabilityRows(available))

			printHeader(out, "Department Statistics")
			departments, err := a.records.DepartmentSummary(ctx)
			if err != nil {
				return err
			}
			renderTable(out, departmentHeaders, departmentRows(departments))

			printHeader(out, "Semester Enrollment Report - Spring 2024")
			report, err := a.records.SemesterEnrollmentReport(ctx, "Spring", 2024)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Courses Offered:   %d\n", report.CoursesOffered)
			fmt.Fprintf(out, "Unique Students:   %d\n", report.UniqueStudents)
			fmt.Fprintf(out, "Total Enrollments: %d\n", report.TotalEnrollments)
			fmt.Fprintf(out, "Total Capacity:    %s\n", formatInt(report.TotalCapacity))
			fmt.Fprintf(out, "Total Enrolled:    %s\n", formatInt(report.TotalEnrolled))
			if report.OverallFillRate != nil {
				fmt.Fprintf(out, "Overall Fill Rate: %.1f%%\n", *report.OverallFillRate)
			}

			printHeader(out, "Students at Risk (GPA < 2.5)")
			atRisk, err := a.records.StudentsAtRisk(ctx, 2.5)
			if err != nil {
				return err
			}
			renderTable(out, atRiskHeaders, atRiskRows(atRisk))

			printHeader(out, "Instrumentation")
			printMetricsSnapshot(out, a.metrics.Snapshot())

			return nil
		},
	}
}

func printHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n", headerRule, title, headerRule)
}

const headerRule = "================================================================================"
