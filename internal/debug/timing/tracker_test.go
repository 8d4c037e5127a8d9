package timing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(steps ...time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	return func() time.Time {
		t := base
		if i < len(steps) {
			t = base.Add(steps[i])
		}
		i++
		return t
	}
}

func TestTrackerRecordsDurations(t *testing.T) {
	tr := NewTracker(nil)
	tr.now = fakeClock(0, 10*time.Millisecond, 0, 30*time.Millisecond)

	tr.EndTiming(tr.StartTiming("merge"))
	tr.EndTiming(tr.StartTiming("merge"))

	assert.Equal(t, []time.Duration{10 * time.Millisecond, 30 * time.Millisecond}, tr.Samples("merge"))

	stats, ok := tr.Stats("merge")
	require.True(t, ok)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, 20*time.Millisecond, stats.Average())
	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 30*time.Millisecond, stats.Max)
	assert.Equal(t, 30*time.Millisecond, stats.Last)

	_, ok = tr.Stats("save")
	assert.False(t, ok)
	assert.Zero(t, Stats{}.Average())
}

func TestTrackerKeepsBoundedHistory(t *testing.T) {
	tr := NewTracker(nil)
	for i := 0; i < maxSamples+5; i++ {
		tr.EndTiming(tr.StartTiming("render"))
	}

	assert.Len(t, tr.Samples("render"), maxSamples)
	stats, _ := tr.Stats("render")
	assert.Equal(t, maxSamples+5, stats.Count)
}

func TestTrackerDisabledRecordsNothing(t *testing.T) {
	tr := NewTracker(nil)
	tr.SetEnabled(false)
	assert.False(t, tr.Enabled())

	tr.EndTiming(tr.StartTiming("load"))

	assert.Nil(t, tr.Samples("load"))
}

func TestTrackerIgnoresForeignContext(t *testing.T) {
	tr := NewTracker(nil)
	assert.NotPanics(t, func() { tr.EndTiming(context.Background()) })
	assert.Nil(t, tr.Samples(""))
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker(nil)
	tr.EndTiming(tr.StartTiming("load"))
	tr.EndTiming(tr.StartTiming("save"))

	tr.Reset("load")
	assert.Nil(t, tr.Samples("load"))
	assert.Len(t, tr.Samples("save"), 1)

	tr.Reset("")
	assert.Nil(t, tr.Samples("save"))
}
