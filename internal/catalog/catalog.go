// Package catalog loads the static list of selectable projects.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/clockfill/internal/model"
	"github.com/bryan-cox/clockfill/internal/schedule"
)

// DefaultPath is the catalog file read when no path is configured.
const DefaultPath = "projects.yaml"

// Catalog is the parsed project catalog.
type Catalog struct {
	Path          string
	Projects      []model.ProjectEntry
	LeaveProjects []string
}

// document mirrors the YAML layout. Pointers distinguish a missing key from
// an empty list.
type document struct {
	Projects      *[]model.ProjectEntry `yaml:"projects"`
	LeaveProjects *[]string             `yaml:"leave_projects"`
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read project catalog '%s': %w", model.ErrConfig, path, err)
	}
	return Parse(path, data)
}

// Parse validates catalog YAML. path is only used in error messages.
func Parse(path string, data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: could not parse YAML from '%s': %w", model.ErrConfig, path, err)
	}

	var problems []string
	if doc.Projects == nil {
		problems = append(problems, "missing top-level key 'projects'")
	} else if len(*doc.Projects) == 0 {
		problems = append(problems, "'projects' is empty")
	}
	if doc.LeaveProjects == nil {
		problems = append(problems, "missing top-level key 'leave_projects'")
	}
	if doc.Projects != nil {
		for i, p := range *doc.Projects {
			if strings.TrimSpace(p.ID) == "" {
				problems = append(problems, fmt.Sprintf("projects[%d] has no 'id'", i))
			}
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: invalid project catalog '%s': %s", model.ErrConfig, path, strings.Join(problems, "; "))
	}

	return &Catalog{
		Path:          path,
		Projects:      *doc.Projects,
		LeaveProjects: *doc.LeaveProjects,
	}, nil
}

// Project returns the project at a 1-based position, as shown to the user.
func (c *Catalog) Project(number int) (model.ProjectEntry, error) {
	if number < 1 || number > len(c.Projects) {
		return model.ProjectEntry{}, fmt.Errorf("%w: project number must be between 1 and %d, got %d", model.ErrInput, len(c.Projects), number)
	}
	return c.Projects[number-1], nil
}

// ProjectByID looks a project up by its service ID.
func (c *Catalog) ProjectByID(id string) (model.ProjectEntry, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.ProjectEntry{}, false
}

// LeaveSet returns the leave project IDs as a set.
func (c *Catalog) LeaveSet() schedule.LeaveSet {
	return schedule.NewLeaveSet(c.LeaveProjects...)
}

// IsLeave reports whether the project ID is flagged as leave.
func (c *Catalog) IsLeave(id string) bool {
	return c.LeaveSet().Contains(id)
}

// ErrNotFound is returned by Resolve when no project matches.
var ErrNotFound = errors.New("project not found")

// Resolve finds a project by ID or, failing that, by 1-based number.
func (c *Catalog) Resolve(id string, number int) (model.ProjectEntry, error) {
	if id != "" {
		if p, ok := c.ProjectByID(id); ok {
			return p, nil
		}
		return model.ProjectEntry{}, fmt.Errorf("%w: %w: %q", model.ErrInput, ErrNotFound, id)
	}
	return c.Project(number)
}
