package verify

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/temporal"
)

var ErrDatabaseMissing = errors.New("database file not found")

// Store is the read side of a storage session.
type Store interface {
	Provider() string
	Builder() squirrel.StatementBuilderType
	Query(ctx context.Context, q squirrel.Sqlizer) (*sql.Rows, error)
	QueryInt(ctx context.Context, q squirrel.Sqlizer) (int, error)
	Count(ctx context.Context, table string) (int, error)
}

type Verifier struct {
	store  Store
	schema *schema.Schema
	now    time.Time
	log    *slog.Logger
}

func New(store Store) *Verifier {
	return &Verifier{
		store: store,
		now:   time.Now(),
		log:   slog.Default().With("component", "verify"),
	}
}

// At fixes the date the overdue statistic is measured against.
func (v *Verifier) At(now time.Time) *Verifier {
	v.now = now
	return v
}

// CheckDatabaseFile fails with ErrDatabaseMissing when a sqlite target does
// not exist yet, so verification never creates an empty database.
func CheckDatabaseFile(dsn string) error {
	path := database.SQLitePath(dsn)
	if path == "" {
		return fmt.Errorf("%w: %s is not a file", ErrDatabaseMissing, dsn)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDatabaseMissing, path)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrDatabaseMissing, path)
	}
	return nil
}

// Run executes every check and always returns a complete report. An error
// means the database could not be queried, not that a check failed.
func (v *Verifier) Run(ctx context.Context) (*Report, error) {
	if v.schema == nil {
		s, err := schema.Load()
		if err != nil {
			return nil, err
		}
		v.schema = s
	}

	report := &Report{}
	steps := []struct {
		name string
		run  func(context.Context, *Report) error
	}{
		{"referential", v.referential},
		{"temporal", v.temporal},
		{"statistics", v.statistics},
		{"diagnostics", v.diagnostics},
		{"counts", v.counts},
	}
	for _, step := range steps {
		if err := step.run(ctx, report); err != nil {
			return nil, fmt.Errorf("%s checks: %w", step.name, err)
		}
	}

	report.Passed = report.Referential.Total() == 0 && report.Temporal.Total() == 0
	v.log.Info("verification finished",
		"passed", report.Passed,
		"referential", report.Referential.Total(),
		"temporal", report.Temporal.Total())
	return report, nil
}

func (v *Verifier) referential(ctx context.Context, r *Report) error {
	qb := v.store.Builder()
	for _, fk := range v.schema.Relations() {
		q := qb.Select("COUNT(*)").
			From(fk.Table + " c").
			LeftJoin(fmt.Sprintf("%s p ON c.%s = p.%s", fk.RefTable, fk.Column, fk.RefColumn)).
			Where(fmt.Sprintf("c.%s IS NOT NULL AND p.%s IS NULL", fk.Column, fk.RefColumn))
		n, err := v.store.QueryInt(ctx, q)
		if err != nil {
			return fmt.Errorf("%s: %w", fk, err)
		}
		r.Referential = append(r.Referential, Check{Name: fk.String(), Violations: n})
	}

	if v.store.Provider() == database.SQLite {
		n, err := v.foreignKeyCheck(ctx)
		if err != nil {
			return err
		}
		r.Referential = append(r.Referential, Check{Name: "sqlite foreign_key_check", Violations: n})
	}
	return nil
}

// foreignKeyCheck counts the rows sqlite itself reports as violating a
// declared foreign key.
func (v *Verifier) foreignKeyCheck(ctx context.Context) (int, error) {
	rows, err := v.store.Query(ctx, squirrel.Expr("PRAGMA foreign_key_check"))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	return n, rows.Err()
}

func (v *Verifier) temporal(ctx context.Context, r *Report) error {
	qb := v.store.Builder()
	checks := []struct {
		name string
		q    squirrel.SelectBuilder
	}{
		{"tasks completed before created", qb.Select("COUNT(*)").From(schema.Tasks).
			Where("completed_at IS NOT NULL AND completed_at <= created_at")},
		{"subtasks completed before created", qb.Select("COUNT(*)").From(schema.Subtasks).
			Where("completed_at IS NOT NULL AND completed_at <= created_at")},
		{"subtasks created before parent task", qb.Select("COUNT(*)").From(schema.Subtasks + " s").
			Join("tasks t ON t.task_id = s.parent_task_id").
			Where("s.created_at < t.created_at")},
		{"comments created before task", qb.Select("COUNT(*)").From(schema.Comments + " c").
			Join("tasks t ON t.task_id = c.task_id").
			Where("c.created_at < t.created_at")},
		{"tags assigned before task created", qb.Select("COUNT(*)").From(schema.TaskTags + " a").
			Join("tasks t ON t.task_id = a.task_id").
			Where("a.assigned_at < t.created_at")},
		{"field values updated before task created", qb.Select("COUNT(*)").From(schema.CustomFieldValue + " fv").
			Join("tasks t ON t.task_id = fv.task_id").
			Where("fv.updated_at < t.created_at")},
	}

	for _, c := range checks {
		n, err := v.store.QueryInt(ctx, c.q)
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
		r.Temporal = append(r.Temporal, Check{Name: c.name, Violations: n})
	}
	return nil
}

func (v *Verifier) statistics(ctx context.Context, r *Report) error {
	qb := v.store.Builder()
	s := &r.Stats
	today := temporal.FormatDate(v.now)

	queries := []struct {
		dst *int
		q   squirrel.SelectBuilder
	}{
		{&s.Tasks, qb.Select("COUNT(*)").From(schema.Tasks)},
		{&s.UnassignedTasks, qb.Select("COUNT(*)").From(schema.Tasks).Where("assignee_id IS NULL")},
		{&s.CompletedTasks, qb.Select("COUNT(*)").From(schema.Tasks).Where(squirrel.Eq{"completed": 1})},
		{&s.OverdueTasks, qb.Select("COUNT(*)").From(schema.Tasks).
			Where("due_date IS NOT NULL").
			Where(squirrel.Eq{"completed": 0}).
			Where(squirrel.Lt{"due_date": today})},
		{&s.TasksWithSubtasks, qb.Select("COUNT(DISTINCT parent_task_id)").From(schema.Subtasks)},
		{&s.TasksWithTags, qb.Select("COUNT(DISTINCT task_id)").From(schema.TaskTags)},
	}
	for _, item := range queries {
		n, err := v.store.QueryInt(ctx, item.q)
		if err != nil {
			return err
		}
		*item.dst = n
	}

	s.CompletionRate = percent(s.CompletedTasks, s.Tasks)
	s.SubtaskCoverage = percent(s.TasksWithSubtasks, s.Tasks)
	s.TagCoverage = percent(s.TasksWithTags, s.Tasks)
	return nil
}

func (v *Verifier) diagnostics(ctx context.Context, r *Report) error {
	qb := v.store.Builder()
	d := &r.Diagnostics

	contiguous := qb.Select("project_id").From(schema.Sections).
		GroupBy("project_id").
		Having("MIN(position) <> 0 OR MAX(position) <> COUNT(*) - 1")

	queries := []struct {
		dst *int
		q   squirrel.SelectBuilder
	}{
		{&d.AssigneeOutsideTeam, qb.Select("COUNT(*)").From(schema.Tasks + " t").
			Join("projects p ON p.project_id = t.project_id").
			Where("t.assignee_id IS NOT NULL").
			Where("NOT EXISTS (SELECT 1 FROM team_memberships tm WHERE tm.team_id = p.team_id AND tm.user_id = t.assignee_id)")},
		{&d.SubtaskAssigneeOutsideTeam, qb.Select("COUNT(*)").From(schema.Subtasks + " s").
			Join("tasks t ON t.task_id = s.parent_task_id").
			Join("projects p ON p.project_id = t.project_id").
			Where("s.assignee_id IS NOT NULL").
			Where("NOT EXISTS (SELECT 1 FROM team_memberships tm WHERE tm.team_id = p.team_id AND tm.user_id = s.assignee_id)")},
		{&d.NonContiguousSections, qb.Select("COUNT(*)").FromSelect(contiguous, "gaps")},
		{&d.CompletionFlagMismatch, qb.Select("COUNT(*)").From(schema.Tasks).
			Where("(completed = 1 AND completed_at IS NULL) OR (completed = 0 AND completed_at IS NOT NULL)")},
	}
	for _, item := range queries {
		n, err := v.store.QueryInt(ctx, item.q)
		if err != nil {
			return err
		}
		*item.dst = n
	}
	return nil
}

func (v *Verifier) counts(ctx context.Context, r *Report) error {
	for _, table := range schema.AllTables {
		n, err := v.store.Count(ctx, table)
		if err != nil {
			return err
		}
		r.Counts = append(r.Counts, TableCount{Table: table, Rows: n})
	}
	return nil
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
