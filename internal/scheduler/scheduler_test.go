package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name  string
	err   error
	calls atomic.Int32
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run() error {
	j.calls.Add(1)
	return j.err
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.Nop())

	require.NoError(t, s.AddJob("0 0 22 * * MON-FRI", &countingJob{name: "b"}))
	require.NoError(t, s.AddJob("@every 1h", &countingJob{name: "a"}))

	assert.Equal(t, []string{"a", "b"}, s.Jobs())
}

func TestScheduler_AddJob_InvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	err := s.AddJob("not a schedule", &countingJob{name: "broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schedule")
	assert.Empty(t, s.Jobs())
}

func TestScheduler_AddJob_FiveFieldRejected(t *testing.T) {
	s := New(zerolog.Nop())

	// seconds field is required
	err := s.AddJob("0 22 * * MON-FRI", &countingJob{name: "five"})
	assert.Error(t, err)
}

func TestScheduler_AddJob_Duplicate(t *testing.T) {
	s := New(zerolog.Nop())

	require.NoError(t, s.AddJob("@every 1h", &countingJob{name: "dup"}))
	err := s.AddJob("@every 2h", &countingJob{name: "dup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "now"}

	require.NoError(t, s.RunNow(job))
	assert.Equal(t, int32(1), job.calls.Load())

	failing := &countingJob{name: "fail", err: errors.New("boom")}
	assert.EqualError(t, s.RunNow(failing), "boom")
}

func TestScheduler_StartStop_RunsJobs(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "tick"}
	failing := &countingJob{name: "tick_fail", err: errors.New("boom")}

	require.NoError(t, s.AddJob("@every 1s", job))
	require.NoError(t, s.AddJob("@every 1s", failing))

	s.Start()
	assert.Eventually(t, func() bool {
		return job.calls.Load() >= 1 && failing.calls.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond)
	s.Stop()
}
