package seeder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/generator"
)

// Store is the storage session driven by a run.
type Store interface {
	generator.Store
	InitSchema(ctx context.Context, ddl string, dropOrder []string) error
}

type Options struct {
	// Seed fixes every random draw of the run. Zero seeds from the clock.
	Seed int64
	// Now anchors all relative timestamps. Zero means time.Now.
	Now time.Time
	// Out receives progress output. Nil discards it.
	Out io.Writer
	// Target names the database in the summary.
	Target string
}

// ErrNoOrganization aborts a run configured without any organization.
var ErrNoOrganization = errors.New("no organization generated, organizations must be at least 1")

// StageError reports the stage a run aborted in. Stages before it are
// already committed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type Summary struct {
	Seed      int64          `yaml:"seed" json:"seed"`
	Provider  string         `yaml:"provider" json:"provider"`
	Target    string         `yaml:"target" json:"target"`
	StartedAt time.Time      `yaml:"started_at" json:"started_at"`
	Elapsed   string         `yaml:"elapsed" json:"elapsed"`
	Stages    []string       `yaml:"stages" json:"stages"`
	Counts    map[string]int `yaml:"counts" json:"counts"`
}

// countingStore tallies the rows of every successful flush.
type countingStore struct {
	Store
	counts map[string]int
}

func newCountingStore(s Store) *countingStore {
	return &countingStore{Store: s, counts: make(map[string]int)}
}

func (c *countingStore) Flush(ctx context.Context, batches ...*database.Batch) error {
	if err := c.Store.Flush(ctx, batches...); err != nil {
		return err
	}
	for _, b := range batches {
		if b.Len() > 0 {
			c.counts[b.Table] += b.Len()
		}
	}
	return nil
}
