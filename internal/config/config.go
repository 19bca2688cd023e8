// Package config loads the secrets and settings clockfill reads from the
// environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/bryan-cox/clockfill/internal/jira"
	"github.com/bryan-cox/clockfill/internal/model"
)

// Environment keys.
const (
	KeyClockifyAPIKey      = "CLOCKIFY_API_KEY"
	KeyClockifyWorkspaceID = "CLOCKIFY_WORKSPACE_ID"
	KeyClockifyBaseURL     = "CLOCKIFY_BASE_URL"
	KeyJiraUsername        = "JIRA_USERNAME"
	KeyJiraAPIToken        = "JIRA_API_TOKEN"
	KeyJiraURL             = "JIRA_URL"
	KeyJiraPAT             = "JIRA_PAT"
	KeyJiraJQL             = "JIRA_JQL"
	KeyUTCOffset           = "CLOCKFILL_UTC_OFFSET"
	KeyHTTPTimeout         = "CLOCKFILL_HTTP_TIMEOUT"
	KeyProjectsPath        = "CLOCKFILL_PROJECTS"
)

// Defaults.
const (
	DefaultClockifyBaseURL = "https://api.clockify.me/api/v1"
	DefaultHTTPTimeout     = 30 * time.Second
)

// DefaultEnvFiles are loaded in order when no files are given. The first
// file to set a variable wins, and the process environment beats both.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Config holds every recognized setting.
type Config struct {
	ClockifyAPIKey      string
	ClockifyWorkspaceID string
	ClockifyBaseURL     string

	JiraUsername string
	JiraAPIToken string
	JiraURL      string
	JiraPAT      string
	JiraJQL      string

	UTCOffset    string
	HTTPTimeout  time.Duration
	ProjectsPath string
}

// MissingConfigError lists required keys that are not set.
type MissingConfigError struct {
	Keys []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s (set via environment or .env)", strings.Join(e.Keys, ", "))
}

// Unwrap classifies missing configuration as a configuration error.
func (e *MissingConfigError) Unwrap() error {
	return model.ErrConfig
}

// Load reads env files, then the environment, into a Config. Missing files
// are ignored; unreadable ones are returned as errors.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	for _, f := range files {
		if err := loadEnvFile(f); err != nil {
			return Config{}, err
		}
	}
	return FromEnv(os.Getenv)
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		slog.Debug("env file not found, skipping", "path", path)
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: could not load env file '%s': %w", model.ErrConfig, path, err)
	}
	slog.Debug("loaded env file", "path", path)
	return nil
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(getenv(key)) }

	cfg := Config{
		ClockifyAPIKey:      get(KeyClockifyAPIKey),
		ClockifyWorkspaceID: get(KeyClockifyWorkspaceID),
		ClockifyBaseURL:     get(KeyClockifyBaseURL),
		JiraUsername:        get(KeyJiraUsername),
		JiraAPIToken:        get(KeyJiraAPIToken),
		JiraURL:             get(KeyJiraURL),
		JiraPAT:             get(KeyJiraPAT),
		JiraJQL:             get(KeyJiraJQL),
		UTCOffset:           get(KeyUTCOffset),
		ProjectsPath:        get(KeyProjectsPath),
		HTTPTimeout:         DefaultHTTPTimeout,
	}

	if cfg.ClockifyBaseURL == "" {
		cfg.ClockifyBaseURL = DefaultClockifyBaseURL
	}
	cfg.ClockifyBaseURL = strings.TrimRight(cfg.ClockifyBaseURL, "/")
	cfg.JiraURL = strings.TrimRight(cfg.JiraURL, "/")
	if cfg.JiraJQL == "" {
		cfg.JiraJQL = jira.DefaultJQL
	}

	if raw := get(KeyHTTPTimeout); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 0 {
			return Config{}, fmt.Errorf("%w: invalid %s '%s': must be a non-negative number of seconds", model.ErrConfig, KeyHTTPTimeout, raw)
		}
		cfg.HTTPTimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}

// RequireClockify checks the keys needed to create time entries.
func (c Config) RequireClockify() error {
	return require(map[string]string{
		KeyClockifyAPIKey:      c.ClockifyAPIKey,
		KeyClockifyWorkspaceID: c.ClockifyWorkspaceID,
	})
}

// RequireSearch checks the keys needed to list workspaces and projects.
func (c Config) RequireSearch() error {
	return require(map[string]string{
		KeyClockifyAPIKey: c.ClockifyAPIKey,
	})
}

// RequireJira checks the keys needed to query the issue tracker. Either a
// personal access token or a username/API token pair is accepted.
func (c Config) RequireJira() error {
	fields := map[string]string{KeyJiraURL: c.JiraURL}
	if c.JiraPAT == "" {
		fields[KeyJiraUsername] = c.JiraUsername
		fields[KeyJiraAPIToken] = c.JiraAPIToken
	}
	return require(fields)
}

// UsesJiraPAT reports whether Jira requests authenticate with a bearer token.
func (c Config) UsesJiraPAT() bool {
	return c.JiraPAT != ""
}

func require(fields map[string]string) error {
	var missing []string
	for key, val := range fields {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &MissingConfigError{Keys: missing}
}
