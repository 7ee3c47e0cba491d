package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/campusops/ucms-api/internal/models"
	"github.com/campusops/ucms-api/internal/schema"
	"github.com/campusops/ucms-api/internal/service"
)

func newInitCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Provision the database schema, optionally loading sample data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			ctx := cmd.Context()
			if err := schema.Provision(ctx, a.db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema provisioned")
			if seed {
				if err := schema.Seed(ctx, a.db); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "sample data loaded")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load bundled sample data after provisioning")
	return cmd
}

func newEnrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <student-id> <offering-id>",
		Short: "Enroll a student into a course offering",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			studentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			offeringID, err := parseID(args[1])
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			enrollmentID, err := a.enrollments.Enroll(cmd.Context(), service.EnrollRequest{StudentID: studentID, OfferingID: offeringID})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "enrolled (enrollment id %d)\n\n", enrollmentID)
			printMetricsSnapshot(out, a.metrics.Snapshot())
			return nil
		},
	}
}

func newGradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade <enrollment-id> <grade>",
		Short: "Record a grade and mark the enrollment completed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			enrollmentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			req := service.UpdateGradeRequest{EnrollmentID: enrollmentID, Grade: models.Grade(args[1])}
			if err := a.enrollments.UpdateGrade(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(out, "grade recorded\n\n")
			printMetricsSnapshot(out, a.metrics.Snapshot())
			return nil
		},
	}
}

func newWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <enrollment-id>",
		Short: "Withdraw a student from a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enrollmentID, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			out := cmd.OutOrStdout()
			if err := a.enrollments.Withdraw(cmd.Context(), enrollmentID); err != nil {
				return err
			}
			fmt.Fprintf(out, "withdrawn\n\n")
			printMetricsSnapshot(out, a.metrics.Snapshot())
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Transcript export artifacts",
	}
	cmd.AddCommand(newExportTranscriptCmd(), newExportPruneCmd())
	return cmd
}

func newExportTranscriptCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "transcript <student-id>",
		Short: "Export a student transcript to CSV or PDF",
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

			path, err := a.exports.ExportTranscript(cmd.Context(), studentID, format)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "written %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", service.ExportFormatCSV, "export format: csv or pdf")
	return cmd
}

func newExportPruneCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete stored exports older than the retention window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			deleted, err := a.exports.PruneExports(olderThan)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range deleted {
				fmt.Fprintf(out, "deleted %s\n", name)
			}
			fmt.Fprintf(out, "pruned %d export(s)\n", len(deleted))
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "retention window, e.g. 720h")
	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
