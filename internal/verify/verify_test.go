package verify

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var checkDate = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

var taskColumns = []string{
	"task_id", "project_id", "section_id", "assignee_id", "name",
	"description", "due_date", "completed", "created_at", "completed_at",
}

// openStore returns an initialized in-memory store together with its raw
// handle, which lets tests bypass the store to plant broken rows.
func openStore(t *testing.T) (*database.Store, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	db, err := sql.Open("sqlite3", database.SQLiteDSN(":memory:"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	store := database.New(db, database.SQLite)
	t.Cleanup(func() { store.Close() })

	s, err := schema.Load()
	require.NoError(t, err)
	require.NoError(t, store.InitSchema(ctx, schema.DDL, s.DropOrder()))
	return store, db
}

// seedBase writes one organization, one team with one member, one outsider,
// one project with two sections.
func seedBase(t *testing.T, store *database.Store) {
	t.Helper()

	orgs := database.NewBatch(schema.Organizations, "organization_id", "name", "domain", "created_at")
	orgs.Add("org", "Acme", "acme.com", "2024-01-01T00:00:00")
	teams := database.NewBatch(schema.Teams, "team_id", "organization_id", "name", "team_type", "created_at")
	teams.Add("team", "org", "Engineering", "engineering", "2024-02-01T00:00:00")
	users := database.NewBatch(schema.Users, "user_id", "organization_id", "first_name", "last_name", "email", "role", "created_at")
	users.Add("member", "org", "Ada", "Lovelace", "ada@acme.com", "Engineer", "2024-03-01T00:00:00")
	users.Add("outsider", "org", "Alan", "Turing", "alan@acme.com", "Analyst", "2024-03-01T00:00:00")
	memberships := database.NewBatch(schema.TeamMemberships, "membership_id", "user_id", "team_id", "joined_at")
	memberships.Add("m1", "member", "team", "2024-03-01T00:00:00")
	projects := database.NewBatch(schema.Projects, "project_id", "team_id", "name", "project_type", "created_at")
	projects.Add("proj", "team", "Roadmap", "product", "2024-04-01T00:00:00")
	sections := database.NewBatch(schema.Sections, "section_id", "project_id", "name", "position")
	sections.Add("sec-0", "proj", "To Do", 0)
	sections.Add("sec-1", "proj", "Done", 1)

	require.NoError(t, store.Flush(context.Background(), orgs, teams, users, memberships, projects, sections))
}

func TestCleanDatasetPasses(t *testing.T) {
	store, _ := openStore(t)
	seedBase(t, store)
	ctx := context.Background()

	tasks := database.NewBatch(schema.Tasks, taskColumns...)
	// Overdue: past due date and still open.
	tasks.Add("t1", "proj", "sec-0", "member", "Fix bug in search", nil, "2025-01-01", 0, "2024-12-01T10:00:00", nil)
	// Past due but completed.
	tasks.Add("t2", "proj", "sec-1", nil, "Write tests", "Details", "2025-01-01", 1, "2024-12-01T10:00:00", "2024-12-20T08:00:00")
	// Due in the future.
	tasks.Add("t3", "proj", "sec-0", "member", "Deploy", nil, "2025-07-01", 0, "2025-05-01T10:00:00", nil)
	subtasks := database.NewBatch(schema.Subtasks, "subtask_id", "parent_task_id", "assignee_id", "name", "completed", "created_at", "completed_at")
	subtasks.Add("s1", "t1", "member", "Code review", 0, "2024-12-02T10:00:00", nil)
	comments := database.NewBatch(schema.Comments, "comment_id", "task_id", "author_id", "body", "created_at")
	comments.Add("c1", "t1", "outsider", "Looks good", "2024-12-03T10:00:00")
	tags := database.NewBatch(schema.Tags, "tag_id", "name", "created_at")
	tags.Add("tag", "bug", "2024-06-01T00:00:00")
	assoc := database.NewBatch(schema.TaskTags, "task_id", "tag_id", "assigned_at")
	assoc.Add("t1", "tag", "2024-12-05T00:00:00")
	assoc.Add("t2", "tag", "2024-12-05T00:00:00")
	require.NoError(t, store.Flush(ctx, tasks, subtasks, comments, tags, assoc))

	report, err := New(store).At(checkDate).Run(ctx)
	require.NoError(t, err)

	assert.True(t, report.Passed)
	assert.Zero(t, report.Referential.Total())
	assert.Zero(t, report.Temporal.Total())
	assert.Len(t, report.Referential, 19, "18 foreign keys plus the sqlite pragma check")

	s := report.Stats
	assert.Equal(t, 3, s.Tasks)
	assert.Equal(t, 1, s.UnassignedTasks)
	assert.Equal(t, 1, s.CompletedTasks)
	assert.Equal(t, 1, s.OverdueTasks)
	assert.Equal(t, 1, s.TasksWithSubtasks)
	assert.Equal(t, 2, s.TasksWithTags)
	assert.InDelta(t, 33.3, s.CompletionRate, 0.1)
	assert.InDelta(t, 66.7, s.TagCoverage, 0.1)

	assert.Equal(t, Diagnostics{}, report.Diagnostics)
	require.Len(t, report.Counts, 13)
	assert.Equal(t, TableCount{Table: schema.Organizations, Rows: 1}, report.Counts[0])
}

func TestViolationsAreReportedTogether(t *testing.T) {
	store, db := openStore(t)
	seedBase(t, store)
	ctx := context.Background()

	tasks := database.NewBatch(schema.Tasks, taskColumns...)
	tasks.Add("bad-done", "proj", "sec-0", "outsider", "Finish early", nil, nil, 1, "2025-01-10T00:00:00", "2025-01-09T00:00:00")
	comments := database.NewBatch(schema.Comments, "comment_id", "task_id", "author_id", "body", "created_at")
	comments.Add("c1", "bad-done", "member", "Too early", "2025-01-01T00:00:00")
	require.NoError(t, store.Flush(ctx, tasks, comments))

	_, err := db.ExecContext(ctx, "PRAGMA foreign_keys = OFF")
	require.NoError(t, err)
	assoc := database.NewBatch(schema.TaskTags, "task_id", "tag_id", "assigned_at")
	assoc.Add("bad-done", "missing-tag", "2025-02-01T00:00:00")
	require.NoError(t, store.Flush(ctx, assoc))

	report, err := New(store).At(checkDate).Run(ctx)
	require.NoError(t, err)

	assert.False(t, report.Passed)
	assert.Equal(t, 2, report.Referential.Total(), "left join and pragma both see the orphan")
	assert.Equal(t, 2, report.Temporal.Total())
	assert.Equal(t, 1, report.Diagnostics.AssigneeOutsideTeam)

	var names []string
	for _, c := range report.Temporal {
		if c.Violations > 0 {
			names = append(names, c.Name)
		}
	}
	assert.ElementsMatch(t, []string{"tasks completed before created", "comments created before task"}, names)
}

func TestSectionGapsAreDiagnosed(t *testing.T) {
	store, _ := openStore(t)
	seedBase(t, store)
	ctx := context.Background()

	projects := database.NewBatch(schema.Projects, "project_id", "team_id", "name", "project_type", "created_at")
	projects.Add("gappy", "team", "Gaps", "product", "2024-04-01T00:00:00")
	sections := database.NewBatch(schema.Sections, "section_id", "project_id", "name", "position")
	sections.Add("g-1", "gappy", "To Do", 1)
	sections.Add("g-3", "gappy", "Done", 3)
	require.NoError(t, store.Flush(ctx, projects, sections))

	report, err := New(store).At(checkDate).Run(ctx)
	require.NoError(t, err)
	assert.True(t, report.Passed, "diagnostics never fail a report")
	assert.Equal(t, 1, report.Diagnostics.NonContiguousSections)
}

func TestCheckDatabaseFile(t *testing.T) {
	dir := t.TempDir()

	err := CheckDatabaseFile(filepath.Join(dir, "missing.sqlite"))
	assert.True(t, errors.Is(err, ErrDatabaseMissing))

	assert.True(t, errors.Is(CheckDatabaseFile(":memory:"), ErrDatabaseMissing))
	assert.True(t, errors.Is(CheckDatabaseFile(dir), ErrDatabaseMissing))

	path := filepath.Join(dir, "present.sqlite")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	assert.NoError(t, CheckDatabaseFile(path))
	assert.NoError(t, CheckDatabaseFile("sqlite://"+path))
}

func TestRender(t *testing.T) {
	report := &Report{
		Passed:      false,
		Referential: CheckGroup{{Name: "tasks.project_id -> projects.project_id", Violations: 3}},
		Temporal:    CheckGroup{{Name: "tasks completed before created"}},
		Stats:       Stats{Tasks: 10, OverdueTasks: 2},
		Counts:      []TableCount{{Table: schema.Tasks, Rows: 10}},
	}

	var text bytes.Buffer
	require.NoError(t, report.Render(&text, "text"))
	assert.Contains(t, text.String(), "FAILED (3 violations)")
	assert.Contains(t, text.String(), "Overdue tasks: 2")
	assert.Contains(t, text.String(), "Verification Failed")

	var js bytes.Buffer
	require.NoError(t, report.Render(&js, "json"))
	var decoded Report
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.Referential.Total())

	var ym bytes.Buffer
	require.NoError(t, report.Render(&ym, "yaml"))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, false, fromYAML["passed"])

	assert.Error(t, report.Render(&text, "xml"))
}
