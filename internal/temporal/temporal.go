package temporal

import (
	"math/rand"
	"time"
)

const (
	// Layout is fixed width so that string order matches chronological order
	// in every supported database.
	Layout     = "2006-01-02T15:04:05"
	DateLayout = "2006-01-02"

	day = 24 * time.Hour
)

// DayRange is a window of whole days before "now". Newest <= Oldest always
// holds; NewDayRange orders its arguments.
type DayRange struct {
	Newest int
	Oldest int
}

func NewDayRange(a, b int) DayRange {
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	if a > b {
		a, b = b, a
	}
	return DayRange{Newest: a, Oldest: b}
}

// Synthesizer derives randomized timestamps that never precede their anchor.
type Synthesizer struct {
	rng *rand.Rand
	now time.Time
}

func New(rng *rand.Rand, now time.Time) *Synthesizer {
	return &Synthesizer{
		rng: rng,
		now: now.UTC().Truncate(time.Second),
	}
}

func (s *Synthesizer) Now() time.Time {
	return s.now
}

// Past returns a timestamp uniformly drawn from [now-Oldest, now-Newest].
func (s *Synthesizer) Past(r DayRange) time.Time {
	start := s.now.Add(-time.Duration(r.Oldest) * day)
	end := s.now.Add(-time.Duration(r.Newest) * day)
	return s.between(start, end)
}

// After returns a timestamp in [anchor, anchor+maxDaysLater]. When the anchor
// is not in the future the result is also kept at or before now.
func (s *Synthesizer) After(anchor time.Time, maxDaysLater int) time.Time {
	if maxDaysLater < 0 {
		maxDaysLater = 0
	}
	end := anchor.Add(time.Duration(maxDaysLater) * day)
	if !anchor.After(s.now) && end.After(s.now) {
		end = s.now
	}
	return s.between(anchor, end)
}

// DueDate returns a date 1-30 days before the anchor's date with probability
// overdueChance, otherwise 1-60 days after it.
func (s *Synthesizer) DueDate(anchor time.Time, overdueChance float64) time.Time {
	y, m, d := anchor.Date()
	base := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if s.Chance(overdueChance) {
		return base.AddDate(0, 0, -(1 + s.rng.Intn(30)))
	}
	return base.AddDate(0, 0, 1+s.rng.Intn(60))
}

// MaybeCompletedAt returns nil with probability 1-completionRate. Otherwise
// the completion lands 1..90 days (60 without a due date) after the anchor
// plus a random time of day, so it is always strictly after the anchor.
func (s *Synthesizer) MaybeCompletedAt(anchor time.Time, hasDueDate bool, completionRate float64) *time.Time {
	if !s.Chance(completionRate) {
		return nil
	}
	maxDays := 60
	if hasDueDate {
		maxDays = 90
	}
	days := 1 + s.rng.Intn(maxDays)
	t := anchor.Add(time.Duration(days)*day + time.Duration(s.rng.Intn(86400))*time.Second)
	return &t
}

// Chance reports true with probability p.
func (s *Synthesizer) Chance(p float64) bool {
	return s.rng.Float64() < p
}

func (s *Synthesizer) between(start, end time.Time) time.Time {
	span := int64(end.Sub(start) / time.Second)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(s.rng.Int63n(span+1)) * time.Second)
}

// Latest returns the later of two timestamps.
func Latest(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatPtr returns nil for a nil timestamp so it can be bound as SQL NULL.
func FormatPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return Format(*t)
}

func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}
