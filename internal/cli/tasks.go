package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/internal/models"
	"taskboard/internal/services"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var in models.TaskInsert
	var status, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Status = models.TaskStatus(status)
			if due != "" {
				d, err := models.ParseDate(due)
				if err != nil {
					return fmt.Errorf("--due: %w", err)
				}
				in.DueDate = d
			}

			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			task, err := a.Store.Create(cmd.Context(), in)
			if task != nil {
				if perr := printTask(cmd.OutOrStdout(), *task, opts.jsonOut); perr != nil {
					return perr
				}
			}
			return reportStoreError(cmd, err)
		},
	}

	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "Task title (required)")
	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Pending | In Progress | Completed (default Pending)")
	cmd.Flags().StringVar(&due, "due", "", "Due date, YYYY-MM-DD (required)")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var status string
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks sorted by due date",
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

			return printTasks(cmd.OutOrStdout(), a.Store.View(filter, !desc), opts.jsonOut)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", string(models.StatusAll), "All | Pending | In Progress | Completed")
	cmd.Flags().BoolVar(&desc, "desc", false, "Latest due date first")
	return cmd
}

func newCompletedCmd(opts *rootOptions) *cobra.Command {
	var desc bool

	cmd := &cobra.Command{
		Use:   "completed",
		Short: "List completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			return printTasks(cmd.OutOrStdout(), a.Store.Completed(!desc), opts.jsonOut)
		},
	}

	cmd.Flags().BoolVar(&desc, "desc", false, "Latest due date first")
	return cmd
}

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var title, description, status, due string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// only flags that were passed are applied
			var upd models.TaskUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				upd.Title = &title
			}
			if flags.Changed("description") {
				upd.Description = &description
			}
			if flags.Changed("status") {
				st := models.TaskStatus(status)
				upd.Status = &st
			}
			if flags.Changed("due") {
				d, err := models.ParseDate(due)
				if err != nil {
					return fmt.Errorf("--due: %w", err)
				}
				upd.DueDate = &d
			}

			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			task, err := a.Store.Update(cmd.Context(), args[0], upd)
			if err == nil && task == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "no task with id %s\n", args[0])
				return nil
			}
			if task != nil {
				if perr := printTask(cmd.OutOrStdout(), *task, opts.jsonOut); perr != nil {
					return perr
				}
			}
			return reportStoreError(cmd, err)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Pending | In Progress | Completed")
	cmd.Flags().StringVar(&due, "due", "", "New due date, YYYY-MM-DD")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			removed, err := a.Store.Delete(cmd.Context(), args[0])
			if err != nil {
				return reportStoreError(cmd, err)
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "no task with id %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count tasks per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			return printStats(cmd.OutOrStdout(), a.Store.Stats(), opts.jsonOut)
		},
	}
}

// reportStoreError prints field errors one per line; the returned error
// gives the command a non-zero exit.
func reportStoreError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		printFieldErrors(cmd.ErrOrStderr(), verr)
		return errors.New("validation failed")
	}
	if errors.Is(err, services.ErrSaveFailed) {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: the change is kept for this run but was not saved")
	}
	return err
}
