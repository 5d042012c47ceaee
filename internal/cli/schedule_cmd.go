package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Preview, commit and inspect estimate schedules",
	}
	cmd.AddCommand(
		newSchedulePreviewCmd(app),
		newScheduleConflictsCmd(app),
		newScheduleCommitCmd(app),
		newScheduleLegendCmd(app),
		newScheduleTasksCmd(app),
		newScheduleDayCmd(app),
		newScheduleHistoryCmd(app),
		newScheduleSummaryCmd(app),
		newScheduleExportCmd(app),
	)
	return cmd
}

// buildFlags are shared by the commands that run the schedule builder.
type buildFlags struct {
	projectID  string
	estimateID string
	start      string
	overrides  string
}

func (f *buildFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&f.estimateID, "estimate", "", "Estimate ID")
	cmd.Flags().StringVar(&f.start, "start", "", "Project start date (YYYY-MM-DD); derived from the estimate when omitted")
	cmd.Flags().StringVar(&f.overrides, "overrides", "", "YAML or JSON file of per-task overrides")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("estimate")
}

func (f *buildFlags) request(app *App) (contract.PreviewRequest, error) {
	overrides, err := loadOverrides(f.overrides)
	if err != nil {
		return contract.PreviewRequest{}, err
	}
	return contract.PreviewRequest{
		CompanyID:         app.CompanyID,
		ProjectID:         f.projectID,
		EstimateID:        f.estimateID,
		StartDateOverride: f.start,
		TaskOverrides:     overrides,
	}, nil
}

// estimateFlags address the committed schedule of one estimate.
type estimateFlags struct {
	projectID  string
	estimateID string
}

func (f *estimateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&f.estimateID, "estimate", "", "Estimate ID")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("estimate")
}

func (f *estimateFlags) request(app *App) contract.TaskListRequest {
	return contract.TaskListRequest{CompanyID: app.CompanyID, ProjectID: f.projectID, EstimateID: f.estimateID}
}

func newSchedulePreviewCmd(app *App) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Build a schedule for an estimate without saving it",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(app)
			if err != nil {
				return err
			}
			preview, err := app.Schedule.Preview(context.Background(), req)
			if err != nil {
				return err
			}
			return render(cmd, contract.NewPreviewView(*preview), func() string {
				return formatter.FormatPreview(preview)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newScheduleConflictsCmd(app *App) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List conflicts between requested and scheduled start dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(app)
			if err != nil {
				return err
			}
			res, err := app.Schedule.Conflicts(context.Background(), req)
			if err != nil {
				return err
			}
			return render(cmd, contract.NewConflictsView(*res), func() string {
				return formatter.FormatConflicts(res.Conflicts)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newScheduleCommitCmd(app *App) *cobra.Command {
	var flags buildFlags
	var actor string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Build a schedule and save it, recording every task change",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(app)
			if err != nil {
				return err
			}
			if actor == "" {
				actor = app.ActorID
			}
			res, err := app.Schedule.Commit(context.Background(), contract.CommitRequest{
				PreviewRequest: req,
				ActorID:        actor,
			})
			if err != nil {
				return err
			}
			return render(cmd, contract.NewCommitView(*res), func() string {
				return formatter.FormatCommit(res)
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&actor, "actor", "", "Who is committing; defaults to the configured actor")
	return cmd
}

func newScheduleLegendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Explain conflict types and reasons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			legend := app.Schedule.Legend()
			return render(cmd, contract.NewLegendView(legend), func() string {
				return formatter.FormatLegend(legend)
			})
		},
	}
}

func newScheduleTasksCmd(app *App) *cobra.Command {
	var flags estimateFlags

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the committed tasks of an estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Schedule.ListTasks(context.Background(), flags.request(app))
			if err != nil {
				return err
			}
			return render(cmd, contract.NewPersistedTaskViews(tasks), func() string {
				return formatter.FormatPersistedTasks(tasks)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newScheduleDayCmd(app *App) *cobra.Command {
	var projectID, date string

	cmd := &cobra.Command{
		Use:   "day",
		Short: "List a project's committed tasks active on one date",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Schedule.TasksForDate(context.Background(), contract.TasksForDateRequest{
				CompanyID: app.CompanyID,
				ProjectID: projectID,
				Date:      date,
			})
			if err != nil {
				return err
			}
			return render(cmd, contract.NewPersistedTaskViews(tasks), func() string {
				return formatter.FormatPersistedTasks(tasks)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newScheduleHistoryCmd(app *App) *cobra.Command {
	var flags estimateFlags

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent schedule changes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Schedule.History(context.Background(), flags.request(app))
			if err != nil {
				return err
			}
			return render(cmd, contract.NewChangeViews(entries), func() string {
				return formatter.FormatHistory(entries)
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newScheduleSummaryCmd(app *App) *cobra.Command {
	var projectID, from, to string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show per-day task counts and labor hours by trade",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := app.Summary.DailySummary(context.Background(), contract.DailySummaryRequest{
				CompanyID: app.CompanyID,
				ProjectID: projectID,
				From:      from,
				To:        to,
			})
			if err != nil {
				return err
			}
			return render(cmd, contract.NewDaySummaryViews(days), func() string {
				return formatter.FormatDailySummary(days)
			})
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID")
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day, inclusive (YYYY-MM-DD); defaults to --from")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newScheduleExportCmd(app *App) *cobra.Command {
	var flags estimateFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the committed schedule, history and daily summary to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer func() {
				if cerr := f.Close(); err == nil && cerr != nil {
					err = fmt.Errorf("closing %s: %w", out, cerr)
				}
				if err != nil {
					_ = os.Remove(out)
				}
			}()

			if app.interactive() {
				stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Writing workbook...")
				defer stop()
			}

			res, err := app.Export.Export(context.Background(), flags.request(app), f)
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return fmt.Sprintf("Wrote %s: %s, %s, %s\n", out,
					formatter.Plural(res.TaskRows, "task"),
					formatter.Plural(res.HistoryRows, "change"),
					formatter.Plural(res.SummaryRows, "summary row"))
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&out, "out", "schedule.xlsx", "Output file")
	return cmd
}
