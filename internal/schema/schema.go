package schema

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed schema.sql
var DDL string

// Table names, in the order the pipeline fills them.
const (
	Organizations    = "organizations"
	Teams            = "teams"
	Users            = "users"
	TeamMemberships  = "team_memberships"
	Projects         = "projects"
	Sections         = "sections"
	Tasks            = "tasks"
	Subtasks         = "subtasks"
	Comments         = "comments"
	Tags             = "tags"
	TaskTags         = "task_tag_associations"
	CustomFields     = "custom_field_definitions"
	CustomFieldValue = "custom_field_values"
)

// AllTables lists every table in pipeline order.
var AllTables = []string{
	Organizations, Teams, Users, TeamMemberships, Projects, Sections,
	Tasks, Subtasks, Comments, Tags, TaskTags, CustomFields, CustomFieldValue,
}

var (
	commentRegex = regexp.MustCompile(`(?m)^\s*--.*$`)
	stringRegex  = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// Statements splits a script on semicolons that are not inside string
// literals. Line comments are dropped.
func Statements(script string) []string {
	script = commentRegex.ReplaceAllString(script, "")

	quoted := make(map[int]bool)
	for _, m := range stringRegex.FindAllStringIndex(script, -1) {
		for i := m[0]; i < m[1]; i++ {
			quoted[i] = true
		}
	}

	statements := make([]string, 0, strings.Count(script, ";")+1)
	var current strings.Builder
	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i, ch := range script {
		if ch == ';' && !quoted[i] {
			flush()
			continue
		}
		current.WriteRune(ch)
	}
	flush()

	return statements
}

// Load parses the embedded DDL and returns its tables with a ready
// dependency graph.
func Load() (*Schema, error) {
	return Parse(DDL)
}
