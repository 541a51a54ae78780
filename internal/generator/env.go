package generator

import (
	"context"
	"math/rand"
	"time"

	"github.com/Rana718/Tasksim/internal/config"
	"github.com/Rana718/Tasksim/internal/database"
	"github.com/Rana718/Tasksim/internal/ids"
	"github.com/Rana718/Tasksim/internal/temporal"
)

// Store is the part of the storage session the generators need.
type Store interface {
	Flush(ctx context.Context, batches ...*database.Batch) error
	TeamMemberIDs(ctx context.Context, projectID string) ([]string, error)
}

// Env carries everything a generator draws from. One Env is shared by every
// stage of a run, so a single seed fixes the whole dataset.
type Env struct {
	Config *config.Config
	Rand   *rand.Rand
	Time   *temporal.Synthesizer
	IDs    ids.Source
	Store  Store
}

func NewEnv(cfg *config.Config, seed int64, now time.Time, store Store) *Env {
	rng := rand.New(rand.NewSource(seed))
	return &Env{
		Config: cfg,
		Rand:   rng,
		Time:   temporal.New(rng, now),
		IDs:    ids.NewSeeded(seed),
		Store:  store,
	}
}

func (e *Env) flush(ctx context.Context, batches ...*database.Batch) error {
	return e.Store.Flush(ctx, batches...)
}

// intBetween draws uniformly from [lo, hi]. An inverted range yields lo.
func (e *Env) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + e.Rand.Intn(hi-lo+1)
}

// sample returns k distinct indexes into a slice of length n.
func (e *Env) sample(n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	return e.Rand.Perm(n)[:k]
}

func (e *Env) pick(items []string) string {
	return items[e.Rand.Intn(len(items))]
}

// nullable turns an empty string into SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
