package seeder

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rana718/Tasksim/internal/config"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/schema"
	"github.com/Rana718/Tasksim/internal/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Counts.Organizations = 1
	cfg.Counts.TeamsPerOrg = 2
	cfg.Counts.UsersPerOrg = 10
	cfg.Counts.ProjectsPerTeam = 1
	cfg.Counts.TasksPerProject = 5
	return cfg
}

func memoryStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScenarioRunVerifies(t *testing.T) {
	ctx := context.Background()
	store := memoryStore(t)
	var out bytes.Buffer

	s, err := New(scenarioConfig(), store, Options{Seed: 42, Out: &out, Target: ":memory:"})
	require.NoError(t, err)

	sum, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), sum.Seed)
	assert.Len(t, sum.Stages, 11)
	assert.Equal(t, 1, sum.Counts[schema.Organizations])
	assert.Equal(t, 2, sum.Counts[schema.Teams])
	assert.Equal(t, 10, sum.Counts[schema.Users])
	assert.Equal(t, 2, sum.Counts[schema.Projects])
	assert.Contains(t, out.String(), "Dataset generated")
	assert.Contains(t, out.String(), strings.Join(s.schema.Graph.GetOrder(), " → "))

	for table, n := range sum.Counts {
		stored, err := store.Count(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, n, stored, table)
	}

	perProject := countBy(t, store, schema.Sections, "project_id")
	require.Len(t, perProject, 2)
	for _, n := range perProject {
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 6)
	}
	for _, n := range countBy(t, store, schema.Tasks, "project_id") {
		assert.GreaterOrEqual(t, n, 5)
		assert.LessOrEqual(t, n, 10)
	}

	report, err := verify.New(store).Run(ctx)
	require.NoError(t, err)
	assert.True(t, report.Passed)
	assert.Zero(t, report.Referential.Total())
	assert.Zero(t, report.Temporal.Total())
	assert.Zero(t, report.Diagnostics.AssigneeOutsideTeam)
	assert.Zero(t, report.Diagnostics.NonContiguousSections)
}

func countBy(t *testing.T, store *database.Store, table, column string) map[string]int {
	t.Helper()
	rows, err := store.Query(context.Background(),
		store.Builder().Select(column, "COUNT(*)").From(table).GroupBy(column))
	require.NoError(t, err)
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		require.NoError(t, rows.Scan(&key, &n))
		out[key] = n
	}
	require.NoError(t, rows.Err())
	return out
}

func TestDifferentSeedsBothValid(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	var tasks []int
	for _, seed := range []int64{7, 8} {
		store := memoryStore(t)
		s, err := New(scenarioConfig(), store, Options{Seed: seed, Now: now})
		require.NoError(t, err)

		sum, err := s.Run(ctx)
		require.NoError(t, err)
		tasks = append(tasks, sum.Counts[schema.Tasks])

		report, err := verify.New(store).Run(ctx)
		require.NoError(t, err)
		assert.True(t, report.Passed, "seed %d", seed)
	}
	require.Len(t, tasks, 2)
}

type failingStore struct {
	Store
	failOn string
	err    error
}

func (f *failingStore) Flush(ctx context.Context, batches ...*database.Batch) error {
	for _, b := range batches {
		if b.Table == f.failOn {
			return f.err
		}
	}
	return f.Store.Flush(ctx, batches...)
}

func TestStageErrorNamesFailingStage(t *testing.T) {
	ctx := context.Background()
	store := memoryStore(t)
	boom := errors.New("constraint violated")

	s, err := New(scenarioConfig(), &failingStore{Store: store, failOn: schema.Tasks, err: boom}, Options{Seed: 1})
	require.NoError(t, err)

	_, err = s.Run(ctx)
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, "tasks", stageErr.Stage)
	assert.ErrorIs(t, err, boom)

	// Stages before the failure stay committed.
	n, err := store.Count(ctx, schema.Sections)
	require.NoError(t, err)
	assert.Greater(t, n, 0)
	n, err = store.Count(ctx, schema.Tasks)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestZeroOrganizationsFailsStage(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Counts.Organizations = 0

	s, err := New(cfg, memoryStore(t), Options{Seed: 3})
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, "organizations", stageErr.Stage)
	assert.ErrorIs(t, err, ErrNoOrganization)
}

type brokenSchemaStore struct {
	Store
}

func (brokenSchemaStore) InitSchema(context.Context, string, []string) error {
	return errors.Join(database.ErrSchema, errors.New("permission denied"))
}

func TestSchemaFailureAbortsBeforeGeneration(t *testing.T) {
	store := memoryStore(t)
	s, err := New(scenarioConfig(), brokenSchemaStore{Store: store}, Options{Seed: 1})
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, "schema", stageErr.Stage)
	assert.ErrorIs(t, err, database.ErrSchema)
}

func TestValidateStages(t *testing.T) {
	s, err := schema.Load()
	require.NoError(t, err)

	good := (&Seeder{schema: s}).pipeline()
	assert.NoError(t, validateStages(s, good))

	swapped := append([]stage(nil), good...)
	swapped[2], swapped[3] = swapped[3], swapped[2]
	assert.ErrorContains(t, validateStages(s, swapped), "produced later")

	missing := append([]stage(nil), good[:len(good)-1]...)
	assert.ErrorContains(t, validateStages(s, missing), "no stage produces")
}

func TestSeedFromClockWhenZero(t *testing.T) {
	s, err := New(scenarioConfig(), memoryStore(t), Options{})
	require.NoError(t, err)
	assert.NotZero(t, s.Seed())
}

func TestManifestRoundTrip(t *testing.T) {
	path := ManifestPath(filepath.Join(t.TempDir(), "sim.sqlite"))
	assert.Equal(t, ".yaml", filepath.Ext(path))

	sum := &Summary{
		Seed:      99,
		Provider:  "sqlite",
		Target:    "sim.sqlite",
		StartedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Elapsed:   "120ms",
		Stages:    []string{"schema", "organizations"},
		Counts:    map[string]int{schema.Organizations: 1},
	}
	require.NoError(t, WriteManifest(path, sum))

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.True(t, sum.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, sum.Seed, got.Seed)
	assert.Equal(t, sum.Stages, got.Stages)
	assert.Equal(t, sum.Counts, got.Counts)

	_, err = ReadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
