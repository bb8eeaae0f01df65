package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/ecsloop/ecs"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		RunID:        "run-1",
		TotalUpdates: 42,
		SystemStats:  []ecs.SystemStats{{Name: "SYSTEM_PHYSICS", ExecutionCount: 42}},
	}
	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	assert.Contains(t, buf.String(), "**Run ID:** run-1")
	assert.Contains(t, buf.String(), "**Total Ticks:** 42")
	assert.Contains(t, buf.String(), "- SYSTEM_PHYSICS: avg 0s, max 0s, runs 42, failures 0")
	assert.Contains(t, buf.String(), "## Failures\nnone")

	t.Run("failing systems are listed with their last error", func(t *testing.T) {
		r := &Report{
			RunID:       "run-2",
			FailedTicks: 3,
			SystemStats: []ecs.SystemStats{
				{Name: "SYSTEM_PHYSICS", ExecutionCount: 10},
				{Name: "SYSTEM_RENDER", ExecutionCount: 10, FailureCount: 3, LastError: "surface closed"},
			},
		}
		require.Len(t, r.Failing(), 1)

		var buf bytes.Buffer
		require.NoError(t, r.Generate(&buf))
		out := buf.String()
		assert.Contains(t, out, "**Failed Ticks:** 3")
		assert.Contains(t, out, "- SYSTEM_RENDER failed 3x, last: surface closed")
		assert.NotContains(t, out, "SYSTEM_PHYSICS failed")
		assert.NotContains(t, out, "## Failures\nnone")
	})
}

func TestTickRecorder(t *testing.T) {
	r := &tickRecorder{}
	require.NoError(t, r.Present(&ecs.TickReport{Tick: 1}))
	require.NoError(t, r.Present(&ecs.TickReport{Tick: 2, SystemErrors: []error{assert.AnError}}))
	assert.Len(t, r.samples, 1)
	assert.Equal(t, 1, r.failed)
}
