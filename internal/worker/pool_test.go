package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signalJob struct {
	name string
	runs chan string
	err  error
}

func (j *signalJob) Name() string { return j.name }

func (j *signalJob) Run(ctx context.Context) error {
	j.runs <- j.name
	return j.err
}

func waitFor(t *testing.T, runs chan string) string {
	t.Helper()
	select {
	case name := <-runs:
		return name
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job run")
		return ""
	}
}

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := NewPool(2, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	runs := make(chan string, 2)
	pool.Submit(&signalJob{name: "first", runs: runs})
	pool.Submit(&signalJob{name: "second", runs: runs})

	seen := map[string]bool{waitFor(t, runs): true, waitFor(t, runs): true}
	assert.True(t, seen["first"])
	assert.True(t, seen["second"])
}

func TestPool_SurvivesFailingJob(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	runs := make(chan string, 2)
	pool.Submit(&signalJob{name: "failing", runs: runs, err: errors.New("boom")})
	pool.Submit(&signalJob{name: "next", runs: runs})

	require.Equal(t, "failing", waitFor(t, runs))
	require.Equal(t, "next", waitFor(t, runs))
}

func TestPool_ScheduleRepeats(t *testing.T) {
	pool := NewPool(1, 4)
	pool.Start(context.Background())
	defer pool.Stop()

	runs := make(chan string, 4)
	pool.Schedule(10*time.Millisecond, &signalJob{name: "tick", runs: runs})

	waitFor(t, runs)
	waitFor(t, runs)
}

func TestPool_SubmitAfterStopIsDropped(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()

	runs := make(chan string, 1)
	pool.Submit(&signalJob{name: "late", runs: runs})

	select {
	case <-runs:
		t.Fatal("job ran after pool stop")
	case <-time.After(50 * time.Millisecond):
	}
}
