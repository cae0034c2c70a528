package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cadence/internal/clock"
	"github.com/mrz1836/cadence/internal/domain"
)

// testNow is the fixed instant used by newTestTracker.
var testNow = time.Date(2024, 6, 12, 9, 30, 0, 0, time.UTC) //nolint:gochecknoglobals // shared test fixture

// sequentialIDs returns an IDGenerator producing prefix-1, prefix-2, ...
func sequentialIDs() IDGenerator {
	counts := map[string]int{}
	return func(prefix string) string {
		counts[prefix]++
		return fmt.Sprintf("%s-%d", prefix, counts[prefix])
	}
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return New(
		WithClock(clock.FixedClock{Time: testNow}),
		WithIDGenerator(sequentialIDs()),
	)
}

func mustAddTask(t *testing.T, tr *Tracker, title string) domain.Task {
	t.Helper()
	task, err := tr.AddTask(TaskInput{Title: title})
	require.NoError(t, err)
	return task
}
