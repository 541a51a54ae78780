package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/Tasksim/internal/seeder"
	"github.com/Rana718/Tasksim/internal/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func smallDataset(t *testing.T) {
	t.Setenv("TASKSIM_GENERATION_COUNTS_TEAMS_PER_ORG", "2")
	t.Setenv("TASKSIM_GENERATION_COUNTS_USERS_PER_ORG", "8")
	t.Setenv("TASKSIM_GENERATION_COUNTS_PROJECTS_PER_TEAM", "1")
	t.Setenv("TASKSIM_GENERATION_COUNTS_TASKS_PER_PROJECT", "5")
}

func TestGenerateThenVerify(t *testing.T) {
	smallDataset(t)
	db := filepath.Join(t.TempDir(), "out", "sim.sqlite")

	out, err := run(t, "generate", "--db", db, "--seed", "11")
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset generated")
	assert.FileExists(t, db)

	sum, err := seeder.ReadManifest(seeder.ManifestPath(db))
	require.NoError(t, err)
	assert.Equal(t, int64(11), sum.Seed)

	out, err = run(t, "verify", "--db", db, "--format", "json")
	require.NoError(t, err)

	var report verify.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Passed)
	assert.Len(t, report.Counts, 13)
}

func TestGenerateRejectsZeroSeed(t *testing.T) {
	db := filepath.Join(t.TempDir(), "zero.sqlite")

	_, err := run(t, "generate", "--db", db, "--seed", "0")
	require.ErrorIs(t, err, ErrZeroSeed)
	assert.NoFileExists(t, db)
}

func TestVerifyMissingDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "absent.sqlite")

	_, err := run(t, "verify", "--db", db, "--format", "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, verify.ErrDatabaseMissing))

	_, statErr := os.Stat(db)
	assert.True(t, os.IsNotExist(statErr), "verify must not create the database")
}
