package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

type Check struct {
	Name       string `json:"name" yaml:"name"`
	Violations int    `json:"violations" yaml:"violations"`
}

type CheckGroup []Check

func (g CheckGroup) Total() int {
	n := 0
	for _, c := range g {
		n += c.Violations
	}
	return n
}

type Stats struct {
	Tasks             int     `json:"tasks" yaml:"tasks"`
	UnassignedTasks   int     `json:"unassigned_tasks" yaml:"unassigned_tasks"`
	CompletedTasks    int     `json:"completed_tasks" yaml:"completed_tasks"`
	CompletionRate    float64 `json:"completion_rate" yaml:"completion_rate"`
	OverdueTasks      int     `json:"overdue_tasks" yaml:"overdue_tasks"`
	TasksWithSubtasks int     `json:"tasks_with_subtasks" yaml:"tasks_with_subtasks"`
	SubtaskCoverage   float64 `json:"subtask_coverage" yaml:"subtask_coverage"`
	TasksWithTags     int     `json:"tasks_with_tags" yaml:"tasks_with_tags"`
	TagCoverage       float64 `json:"tag_coverage" yaml:"tag_coverage"`
}

// Diagnostics are informational and never fail a report.
type Diagnostics struct {
	AssigneeOutsideTeam        int `json:"assignee_outside_team" yaml:"assignee_outside_team"`
	SubtaskAssigneeOutsideTeam int `json:"subtask_assignee_outside_team" yaml:"subtask_assignee_outside_team"`
	NonContiguousSections      int `json:"non_contiguous_sections" yaml:"non_contiguous_sections"`
	CompletionFlagMismatch     int `json:"completion_flag_mismatch" yaml:"completion_flag_mismatch"`
}

type TableCount struct {
	Table string `json:"table" yaml:"table"`
	Rows  int    `json:"rows" yaml:"rows"`
}

type Report struct {
	Passed      bool         `json:"passed" yaml:"passed"`
	Referential CheckGroup   `json:"referential" yaml:"referential"`
	Temporal    CheckGroup   `json:"temporal" yaml:"temporal"`
	Stats       Stats        `json:"stats" yaml:"stats"`
	Diagnostics Diagnostics  `json:"diagnostics" yaml:"diagnostics"`
	Counts      []TableCount `json:"counts" yaml:"counts"`
}

// Render writes the report as text, json or yaml.
func (r *Report) Render(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		r.WriteText(w)
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q (want text, json or yaml)", format)
	}
}

func (r *Report) WriteText(w io.Writer) {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	header := color.New(color.FgCyan, color.Bold)
	rule := strings.Repeat("=", 60)

	header.Fprintln(w, rule)
	header.Fprintln(w, "Database Verification")
	header.Fprintln(w, rule)

	writeGroup := func(title string, g CheckGroup) {
		if g.Total() == 0 {
			pass.Fprintf(w, "✓ %s: PASSED\n", title)
			return
		}
		fail.Fprintf(w, "❌ %s: FAILED (%d violations)\n", title, g.Total())
		for _, c := range g {
			if c.Violations > 0 {
				fmt.Fprintf(w, "   %-45s %d\n", c.Name, c.Violations)
			}
		}
	}
	writeGroup("Foreign key integrity", r.Referential)
	writeGroup("Temporal consistency", r.Temporal)

	s := r.Stats
	fmt.Fprintf(w, "✓ Unassigned tasks: %d\n", s.UnassignedTasks)
	fmt.Fprintf(w, "✓ Task completion: %d/%d (%.1f%%)\n", s.CompletedTasks, s.Tasks, s.CompletionRate)
	fmt.Fprintf(w, "✓ Overdue tasks: %d\n", s.OverdueTasks)
	fmt.Fprintf(w, "✓ Tasks with subtasks: %d/%d (%.1f%%)\n", s.TasksWithSubtasks, s.Tasks, s.SubtaskCoverage)
	fmt.Fprintf(w, "✓ Tasks with tags: %d/%d (%.1f%%)\n", s.TasksWithTags, s.Tasks, s.TagCoverage)

	d := r.Diagnostics
	if d != (Diagnostics{}) {
		color.New(color.FgYellow).Fprintln(w, "\nDiagnostics:")
		fmt.Fprintf(w, "  task assignees outside team     %d\n", d.AssigneeOutsideTeam)
		fmt.Fprintf(w, "  subtask assignees outside team  %d\n", d.SubtaskAssigneeOutsideTeam)
		fmt.Fprintf(w, "  projects with section gaps      %d\n", d.NonContiguousSections)
		fmt.Fprintf(w, "  completion flag mismatches      %d\n", d.CompletionFlagMismatch)
	}

	fmt.Fprintln(w, "\nRecord Counts:")
	for _, c := range r.Counts {
		fmt.Fprintf(w, "  • %-30s %6d\n", c.Table, c.Rows)
	}

	fmt.Fprintln(w)
	header.Fprintln(w, rule)
	if r.Passed {
		pass.Fprintln(w, "✅ Verification Complete: All checks passed!")
	} else {
		fail.Fprintln(w, "❌ Verification Failed")
	}
	header.Fprintln(w, rule)
}
