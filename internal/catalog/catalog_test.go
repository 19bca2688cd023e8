package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bryan-cox/clockfill/internal/model"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write catalog: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `
projects:
  - id: "P1"
    name: "Acme"
  - id: "L1"
    name: "Annual Leave"
leave_projects:
  - "L1"
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(c.Projects))
	}
	if c.Projects[0] != (model.ProjectEntry{ID: "P1", Name: "Acme"}) {
		t.Errorf("first project = %+v", c.Projects[0])
	}
	if !c.IsLeave("L1") || c.IsLeave("P1") {
		t.Errorf("leave set = %v, want only L1", c.LeaveProjects)
	}

	p, err := c.Project(2)
	if err != nil || p.ID != "L1" {
		t.Errorf("Project(2) = %+v, %v; want L1", p, err)
	}
	if _, err := c.Project(0); !errors.Is(err, model.ErrInput) {
		t.Errorf("Project(0) error = %v, want ErrInput", err)
	}
	if _, err := c.Project(3); !errors.Is(err, model.ErrInput) {
		t.Errorf("Project(3) error = %v, want ErrInput", err)
	}
}

func TestLoadEmptyLeaveList(t *testing.T) {
	path := writeCatalog(t, "projects:\n  - id: P1\n    name: Acme\nleave_projects: []\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.LeaveProjects) != 0 {
		t.Errorf("LeaveProjects = %v, want empty", c.LeaveProjects)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing projects", "leave_projects: []\n", "'projects'"},
		{"missing leave_projects", "projects:\n  - id: P1\n    name: Acme\n", "'leave_projects'"},
		{"empty projects", "projects: []\nleave_projects: []\n", "'projects' is empty"},
		{"project without id", "projects:\n  - name: Acme\nleave_projects: []\n", "projects[0] has no 'id'"},
		{"malformed", "projects: [\n", "could not parse YAML"},
		{"empty file", "", "missing top-level key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeCatalog(t, tt.content))
			if !errors.Is(err, model.ErrConfig) {
				t.Fatalf("error = %v, want ErrConfig", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, model.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap os.ErrNotExist", err)
	}
}

func TestResolve(t *testing.T) {
	c := &Catalog{Projects: []model.ProjectEntry{{ID: "P1", Name: "Acme"}, {ID: "P2", Name: "Beta"}}}
	p, err := c.Resolve("P2", 0)
	if err != nil || p.Name != "Beta" {
		t.Errorf("Resolve(P2) = %+v, %v", p, err)
	}
	p, err = c.Resolve("", 1)
	if err != nil || p.ID != "P1" {
		t.Errorf("Resolve(#1) = %+v, %v", p, err)
	}
	_, err = c.Resolve("P9", 0)
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, model.ErrInput) {
		t.Errorf("Resolve(P9) error = %v, want ErrNotFound and ErrInput", err)
	}
}
