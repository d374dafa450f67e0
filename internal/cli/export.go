package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/handlers"
	"taskboard/internal/models"
	"taskboard/internal/pdf"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out, status string
	var desc bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the board as a PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.TaskStatus(status)
			if !filter.ValidFilter() {
				return fmt.Errorf("invalid status %q", status)
			}

			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			report := handlers.BuildReport(a.Store, filter, !desc, time.Now())
			var buf bytes.Buffer
			if err := pdf.NewReportGenerator(a.Config.Reports.FontPath).Generate(&buf, report); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d tasks)\n", out, len(report.Tasks))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "tasks.pdf", "Output file")
	cmd.Flags().StringVarP(&status, "status", "s", string(models.StatusAll), "All | Pending | In Progress | Completed")
	cmd.Flags().BoolVar(&desc, "desc", false, "Latest due date first")
	return cmd
}
