package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/bryan-cox/clockfill/internal/catalog"
	"github.com/bryan-cox/clockfill/internal/config"
	"github.com/bryan-cox/clockfill/internal/output"
	"github.com/bryan-cox/clockfill/internal/timefmt"
)

// version is set via ldflags at build time.
var version = "dev"

// now is the clock used to pick the current year.
var now = time.Now

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	projectsPath string
	envFiles     []string
	debug        bool

	// cfg is loaded once before any command runs.
	cfg config.Config

	// rootCmd fills time entries when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "clockfill",
		Short: "Bulk-create Clockify time entries from a weekday schedule.",
		Long: `clockfill creates Clockify time entries for every working day in a day range
of one month, following a fixed weekday schedule. The description can be
picked from the open JIRA issues assigned to you.

Settings and secrets are read from the environment and from .env.local / .env.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runFillCommand,
	}
)

func init() {
	// Add persistent flags to the root command (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&projectsPath, "projects", catalog.DefaultPath, "Path to the YAML project catalog.")
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", config.DefaultEnvFiles, "Env files to load; earlier files win, the environment beats all.")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging.")

	// The root command runs fill, so it takes the same flags.
	addSelectionFlags(rootCmd)
	addDescriptionFlags(rootCmd)

	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	os.Exit(run())
}

func run() int {
	err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version))
	return output.ExitCodeFor(err)
}

// setup configures logging and loads configuration for every command.
func setup(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	var err error
	cfg, err = config.Load(envFiles...)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("projects") && cfg.ProjectsPath != "" {
		projectsPath = cfg.ProjectsPath
	}
	slog.Debug("configuration loaded", "projects", projectsPath, "clockify", cfg.ClockifyBaseURL, "timeout", cfg.HTTPTimeout.String())
	return nil
}

// --- Shared helpers ---

func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	return output.NewPrinter(out, output.IsTTY(out)).WithStderr(cmd.ErrOrStderr())
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

func newFormatter() (timefmt.Formatter, error) {
	return timefmt.New(now(), cfg.UTCOffset)
}
