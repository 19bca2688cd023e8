package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/clockfill/internal/clipboard"
	"github.com/bryan-cox/clockfill/internal/clockify"
	"github.com/bryan-cox/clockfill/internal/prompt"
	"github.com/bryan-cox/clockfill/internal/report"
)

var (
	pageSize    int
	copyMatches bool

	// searchCmd represents the search command
	searchCmd = &cobra.Command{
		Use:   "search [term]",
		Short: "Find projects by name across all workspaces.",
		Long: `Lists every workspace and the projects whose name contains the term,
ignoring case. Use it to find the IDs to put in the project catalog.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSearchCommand,
	}
)

func init() {
	searchCmd.Flags().IntVar(&pageSize, "page-size", clockify.DefaultPageSize, "Projects requested per page (1-100).")
	searchCmd.Flags().BoolVar(&copyMatches, "copy", false, "Copy the matches to the clipboard as 'name<TAB>id' lines.")
}

func runSearchCommand(cmd *cobra.Command, args []string) error {
	if err := cfg.RequireSearch(); err != nil {
		return err
	}

	var term string
	if len(args) == 1 {
		term = args[0]
	} else {
		var err error
		term, err = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).Line("Enter a word to search in project names: ")
		if err != nil {
			return err
		}
	}

	client := clockify.NewClient(cfg.ClockifyBaseURL, cfg.ClockifyAPIKey, newHTTPClient())
	results, err := client.SearchProjects(cmd.Context(), term, pageSize)
	if err != nil {
		return err
	}
	report.PrintSearchResults(cmd.OutOrStdout(), term, results)

	if copyMatches {
		printer := newPrinter(cmd)
		lines := report.MatchLines(results)
		if lines == "" {
			printer.Warn("no matching projects to copy")
			return nil
		}
		if err := clipboard.CopyText(lines); err != nil {
			printer.Warn("could not copy to clipboard: %v", err)
			return nil
		}
		printer.Success("Copied %d matching projects to the clipboard", strings.Count(lines, "\n"))
	}
	return nil
}
