package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/clockfill/internal/catalog"
	"github.com/bryan-cox/clockfill/internal/fill"
	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/prompt"
	"github.com/bryan-cox/clockfill/internal/report"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the time entries a fill would create.",
	Long: `Prints every interval that fill would submit for the selection, with the
local time and the timestamps sent to Clockify. Nothing is submitted and no
credentials are needed.`,
	Args: cobra.NoArgs,
	RunE: runPlanCommand,
}

func init() {
	addSelectionFlags(planCmd)
	for _, name := range []string{"month", "start-day", "end-day"} {
		_ = planCmd.MarkFlagRequired(name)
	}
	planCmd.MarkFlagsOneRequired("project", "project-id")
}

func runPlanCommand(cmd *cobra.Command, _ []string) error {
	cat, err := catalog.Load(projectsPath)
	if err != nil {
		return err
	}
	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	project, err := cat.Resolve(projectID, projectNumber)
	if err != nil {
		return err
	}
	if _, err := prompt.InRange(monthFlag, 1, 12); err != nil {
		return fmt.Errorf("invalid --month: %w", err)
	}
	month := time.Month(monthFlag)
	last := timefmt.DaysIn(formatter.Year, month)
	if startDay < 1 || startDay > last || endDay < startDay || endDay > last {
		return fmt.Errorf("%w: day range %d-%d is not within 1-%d for %s %d", model.ErrInput, startDay, endDay, last, month, formatter.Year)
	}

	rc := &fill.RunContext{Catalog: cat, Formatter: formatter}
	days, err := fill.Plan(rc, fill.Request{Project: project, Month: month, StartDay: startDay, EndDay: endDay})
	if err != nil {
		return err
	}

	printer := newPrinter(cmd)
	printer.Title("%s (%s), %s %d", project.Name, project.ID, month, formatter.Year)
	return report.PrintSchedule(cmd.OutOrStdout(), days, formatter, month)
}
