package seeder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Rana718/Tasksim/internal/config"
	"github.com/Rana718/Tasksim/internal/generator"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/fatih/color"
)

type Seeder struct {
	config *config.Config
	store  *countingStore
	schema *schema.Schema
	stages []stage
	opts   Options
	out    io.Writer
	log    *slog.Logger
}

type stage struct {
	name   string
	tables []string
	run    func(ctx context.Context, st *state) error
}

// state holds the projections threaded from stage to stage.
type state struct {
	env      *generator.Env
	org      generator.OrgRef
	teams    []generator.TeamRef
	users    []generator.UserRef
	projects []generator.ProjectRef
	sections []generator.SectionRef
	tasks    []generator.TaskRef
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	bold   = color.New(color.FgGreen, color.Bold)
)

// New prepares a run and checks that the stage list fills every table of
// the schema after the tables it references.
func New(cfg *config.Config, store Store, opts Options) (*Seeder, error) {
	s, err := schema.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	seeder := &Seeder{
		config: cfg,
		store:  newCountingStore(store),
		schema: s,
		opts:   opts,
		out:    out,
		log:    slog.Default().With("component", "seeder"),
	}
	seeder.stages = seeder.pipeline()

	if err := validateStages(s, seeder.stages); err != nil {
		return nil, fmt.Errorf("invalid stage order: %w", err)
	}
	return seeder, nil
}

func (s *Seeder) Seed() int64 {
	return s.opts.Seed
}

func (s *Seeder) pipeline() []stage {
	return []stage{
		{name: "schema", run: func(ctx context.Context, st *state) error {
			return s.store.InitSchema(ctx, schema.DDL, s.schema.DropOrder())
		}},
		{name: "organizations", tables: []string{schema.Organizations}, run: func(ctx context.Context, st *state) error {
			orgs, err := generator.GenerateOrganizations(ctx, st.env)
			if err != nil {
				return err
			}
			if len(orgs) == 0 {
				return ErrNoOrganization
			}
			st.org = orgs[0]
			return nil
		}},
		{name: "teams", tables: []string{schema.Teams}, run: func(ctx context.Context, st *state) (err error) {
			st.teams, err = generator.GenerateTeams(ctx, st.env, st.org)
			return err
		}},
		{name: "users", tables: []string{schema.Users, schema.TeamMemberships}, run: func(ctx context.Context, st *state) (err error) {
			st.users, err = generator.GenerateUsers(ctx, st.env, st.org, st.teams)
			return err
		}},
		{name: "projects", tables: []string{schema.Projects}, run: func(ctx context.Context, st *state) (err error) {
			st.projects, err = generator.GenerateProjects(ctx, st.env, st.teams)
			return err
		}},
		{name: "sections", tables: []string{schema.Sections}, run: func(ctx context.Context, st *state) (err error) {
			st.sections, err = generator.GenerateSections(ctx, st.env, st.projects)
			return err
		}},
		{name: "tasks", tables: []string{schema.Tasks}, run: func(ctx context.Context, st *state) (err error) {
			st.tasks, err = generator.GenerateTasks(ctx, st.env, st.projects, st.sections)
			return err
		}},
		{name: "subtasks", tables: []string{schema.Subtasks}, run: func(ctx context.Context, st *state) error {
			_, err := generator.GenerateSubtasks(ctx, st.env, st.tasks)
			return err
		}},
		{name: "comments", tables: []string{schema.Comments}, run: func(ctx context.Context, st *state) error {
			_, err := generator.GenerateComments(ctx, st.env, st.tasks, st.users)
			return err
		}},
		{name: "tags", tables: []string{schema.Tags, schema.TaskTags}, run: func(ctx context.Context, st *state) error {
			_, _, err := generator.GenerateTags(ctx, st.env, st.tasks)
			return err
		}},
		{name: "custom fields", tables: []string{schema.CustomFields, schema.CustomFieldValue}, run: func(ctx context.Context, st *state) error {
			_, _, err := generator.GenerateCustomFields(ctx, st.env, st.projects, st.tasks)
			return err
		}},
	}
}

// validateStages requires the stages to cover every table exactly once, in
// an order compatible with the foreign keys.
func validateStages(s *schema.Schema, stages []stage) error {
	var seq []string
	for _, st := range stages {
		seq = append(seq, st.tables...)
	}
	if err := s.Graph.ValidateSequence(seq); err != nil {
		return err
	}

	covered := make(map[string]bool, len(seq))
	for _, t := range seq {
		covered[t] = true
	}
	var missing []string
	for name := range s.Tables {
		if !covered[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("no stage produces %s", strings.Join(missing, ", "))
	}
	return nil
}

// Run executes every stage in order. The first failing stage aborts the run
// with a *StageError.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	started := time.Now()
	cyan.Fprintln(s.out, "🌱 Generating dataset...")
	cyan.Fprintf(s.out, "📋 Table order: %s\n", strings.Join(s.schema.Graph.GetOrder(), " → "))
	fmt.Fprintf(s.out, "🎲 Seed: %d\n\n", s.opts.Seed)
	s.log.Info("generation started", "seed", s.opts.Seed, "target", s.opts.Target)

	st := &state{env: generator.NewEnv(s.config, s.opts.Seed, s.opts.Now, s.store)}
	names := make([]string, 0, len(s.stages))

	for _, stg := range s.stages {
		cyan.Fprintf(s.out, "  📝 %s...\n", stg.name)
		stageStart := time.Now()

		if err := stg.run(ctx, st); err != nil {
			s.log.Error("stage failed", "stage", stg.name, "error", err)
			yellow.Fprintf(s.out, "  ⚠️  %s failed, earlier stages stay committed\n", stg.name)
			return nil, &StageError{Stage: stg.name, Err: err}
		}

		var rows []string
		for _, t := range stg.tables {
			rows = append(rows, fmt.Sprintf("%s=%d", t, s.store.counts[t]))
		}
		green.Fprintf(s.out, "  ✅ %s %s\n", stg.name, strings.Join(rows, " "))
		s.log.Debug("stage finished", "stage", stg.name, "elapsed", time.Since(stageStart))
		names = append(names, stg.name)
	}

	counts := make(map[string]int, len(s.schema.Tables))
	for name := range s.schema.Tables {
		counts[name] = s.store.counts[name]
	}

	summary := &Summary{
		Seed:      s.opts.Seed,
		Provider:  s.config.Database.Provider,
		Target:    s.opts.Target,
		StartedAt: started.UTC().Truncate(time.Second),
		Elapsed:   time.Since(started).Round(time.Millisecond).String(),
		Stages:    names,
		Counts:    counts,
	}
	s.printSummary(summary)
	s.log.Info("generation finished", "seed", summary.Seed, "elapsed", summary.Elapsed)
	return summary, nil
}

func (s *Seeder) printSummary(sum *Summary) {
	fmt.Fprintln(s.out)
	bold.Fprintln(s.out, "✅ Dataset generated")
	for _, name := range s.schema.Graph.GetOrder() {
		fmt.Fprintf(s.out, "  • %-28s %6d\n", name, sum.Counts[name])
	}
	fmt.Fprintf(s.out, "\n  seed %d, %s, %s\n", sum.Seed, sum.Elapsed, sum.Target)
}
