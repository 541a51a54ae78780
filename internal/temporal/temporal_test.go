package temporal

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestSynth(seed int64) *Synthesizer {
	return New(rand.New(rand.NewSource(seed)), fixedNow)
}

func TestNewDayRangeOrdersBounds(t *testing.T) {
	r := NewDayRange(730, 365)
	assert.Equal(t, DayRange{Newest: 365, Oldest: 730}, r)

	r = NewDayRange(1, 200)
	assert.Equal(t, DayRange{Newest: 1, Oldest: 200}, r)

	r = NewDayRange(-5, 10)
	assert.Equal(t, DayRange{Newest: 0, Oldest: 10}, r)
}

func TestPastStaysInsideWindow(t *testing.T) {
	s := newTestSynth(1)
	r := NewDayRange(30, 365)
	earliest := fixedNow.Add(-365 * day)
	latest := fixedNow.Add(-30 * day)

	for i := 0; i < 2000; i++ {
		ts := s.Past(r)
		assert.False(t, ts.Before(earliest), "timestamp %s before window", ts)
		assert.False(t, ts.After(latest), "timestamp %s after window", ts)
	}
}

func TestPastSingleDayWindow(t *testing.T) {
	s := newTestSynth(2)
	ts := s.Past(NewDayRange(0, 0))
	assert.Equal(t, fixedNow, ts)
}

func TestAfterNeverPrecedesAnchor(t *testing.T) {
	s := newTestSynth(3)
	anchor := fixedNow.Add(-100 * day)

	for i := 0; i < 2000; i++ {
		ts := s.After(anchor, 15)
		assert.False(t, ts.Before(anchor))
		assert.False(t, ts.After(anchor.Add(15*day)))
	}
}

func TestAfterClampsToNow(t *testing.T) {
	s := newTestSynth(4)
	anchor := fixedNow.Add(-2 * time.Hour)

	for i := 0; i < 500; i++ {
		ts := s.After(anchor, 30)
		assert.False(t, ts.Before(anchor))
		assert.False(t, ts.After(fixedNow), "timestamp %s after now", ts)
	}
}

func TestAfterFutureAnchorIsNotClamped(t *testing.T) {
	s := newTestSynth(5)
	anchor := fixedNow.Add(10 * day)

	for i := 0; i < 200; i++ {
		ts := s.After(anchor, 5)
		assert.False(t, ts.Before(anchor))
	}
}

func TestDueDateRanges(t *testing.T) {
	anchor := time.Date(2025, 3, 10, 17, 45, 12, 0, time.UTC)
	base := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	overdue := newTestSynth(6)
	for i := 0; i < 500; i++ {
		d := overdue.DueDate(anchor, 1)
		diff := int(base.Sub(d) / day)
		assert.GreaterOrEqual(t, diff, 1)
		assert.LessOrEqual(t, diff, 30)
	}

	onTime := newTestSynth(7)
	for i := 0; i < 500; i++ {
		d := onTime.DueDate(anchor, 0)
		diff := int(d.Sub(base) / day)
		assert.GreaterOrEqual(t, diff, 1)
		assert.LessOrEqual(t, diff, 60)
	}
}

func TestMaybeCompletedAt(t *testing.T) {
	anchor := fixedNow.Add(-50 * day)

	never := newTestSynth(8)
	for i := 0; i < 200; i++ {
		assert.Nil(t, never.MaybeCompletedAt(anchor, true, 0))
	}

	always := newTestSynth(9)
	for i := 0; i < 2000; i++ {
		withDue := always.MaybeCompletedAt(anchor, true, 1)
		require.NotNil(t, withDue)
		assert.True(t, withDue.After(anchor))
		assert.False(t, withDue.After(anchor.Add(91*day)))

		noDue := always.MaybeCompletedAt(anchor, false, 1)
		require.NotNil(t, noDue)
		assert.True(t, noDue.After(anchor))
		assert.False(t, noDue.After(anchor.Add(61*day)))
	}
}

func TestFormatIsSortable(t *testing.T) {
	a := time.Date(2024, 1, 9, 8, 5, 3, 0, time.UTC)
	b := a.Add(time.Second)
	assert.Less(t, Format(a), Format(b))

	parsed, err := Parse(Format(a))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(a))

	assert.Nil(t, FormatPtr(nil))
	assert.Equal(t, "2024-01-09T08:05:03", FormatPtr(&a))
	assert.Equal(t, "2024-01-09", FormatDate(a))
}

func TestLatest(t *testing.T) {
	a := fixedNow
	b := fixedNow.Add(time.Minute)
	assert.Equal(t, b, Latest(a, b))
	assert.Equal(t, b, Latest(b, a))
}
