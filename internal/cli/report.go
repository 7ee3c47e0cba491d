package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derived academic reports",
	}
	cmd.AddCommand(
		newTranscriptCmd(),
		newGPACmd(),
		newCoursesCmd(),
		newCourseStatsCmd(),
		newDepartmentsCmd(),
		newSemesterCmd(),
		newAtRiskCmd(),
	)
	return cmd
}

func newTranscriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcript <student-id>",
		Short: "Full transcript ordered by term and course code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			entries, err := a.records.Transcript(cmd.Context(), studentID)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), transcriptHeaders, transcriptRows(entries))
			return nil
		},
	}
}

func newGPACmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gpa <student-id>",
		Short: "GPA over graded enrollments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			summary, err := a.records.GPA(cmd.Context(), studentID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "courses completed: %d\n", summary.CoursesCompleted)
			fmt.Fprintf(out, "total credits:     %s\n", formatInt(summary.TotalCredits))
			fmt.Fprintf(out, "gpa:               %s\n", formatFloat(summary.GPA))
			return nil
		},
	}
}

func newCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses <semester> <year>",
		Short: "Seat availability for a term",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[1])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			offerings, err := a.records.AvailableCourses(cmd.Context(), args[0], year)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), availabilityHeaders, availabilityRows(offerings))
			return nil
		},
	}
}

func newCourseStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "course-stats <course-id>",
		Short: "Per-offering fill rates and grade distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			stats, err := a.records.CourseEnrollmentStats(cmd.Context(), courseID)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), statsHeaders, offeringStatsRows(stats))
			return nil
		},
	}
}

func newDepartmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "Per-department counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			summaries, err := a.records.DepartmentSummary(cmd.Context())
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), departmentHeaders, departmentRows(summaries))
			return nil
		},
	}
}

func newSemesterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "semester <semester> <year>",
		Short: "Term-wide enrollment totals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[1])
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			report, err := a.records.SemesterEnrollmentReport(cmd.Context(), args[0], year)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "courses offered:   %d\n", report.CoursesOffered)
			fmt.Fprintf(out, "unique students:   %d\n", report.UniqueStudents)
			fmt.Fprintf(out, "total enrollments: %d\n", report.TotalEnrollments)
			fmt.Fprintf(out, "total capacity:    %s\n", formatInt(report.TotalCapacity))
			fmt.Fprintf(out, "total enrolled:    %s\n", formatInt(report.TotalEnrolled))
			if report.OverallFillRate != nil {
				fmt.Fprintf(out, "overall fill rate: %.1f%%\n", *report.OverallFillRate)
			} else {
				fmt.Fprintln(out, "overall fill rate: -")
			}
			return nil
		},
	}
}

func newAtRiskCmd() *cobra.Command {
	var threshold float64
	cmd := &cobra.Command{
		Use:   "at-risk",
		Short: "Active students with GPA below the threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			students, err := a.records.StudentsAtRisk(cmd.Context(), threshold)
			if err != nil {
				return err
			}
			renderTable(cmd.OutOrStdout(), atRiskHeaders, atRiskRows(students))
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 2.0, "GPA cutoff (strictly below)")
	return cmd
}
