package coordinator_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjper/dispatchd/internal/dispatch/coordinator"
	"github.com/tjper/dispatchd/internal/dispatch/transport"
)

// fakeFabric is an in-memory transport.CoordinatorSide for exercising the
// coordinator's scheduling algorithm without a real network fabric. Workers
// are simulated: every Assignment sent to a rank is immediately "executed"
// (exit status 0 unless the payload is "exit 7") and a Completion is
// pushed back through the same fan-in channel the real gRPC fabric would
// use, from a per-rank goroutine -- mirroring one goroutine per worker
// stream.
type fakeFabric struct {
	size int

	mu          sync.Mutex
	completions chan rankedCompletion
	terminated  map[int]bool
}

type rankedCompletion struct {
	rank int
	c    transport.Completion
}

func newFakeFabric(size int) *fakeFabric {
	f := &fakeFabric{
		size:        size,
		completions: make(chan rankedCompletion, size*4),
		terminated:  make(map[int]bool),
	}
	// Every worker starts READY.
	for rank := 1; rank < size; rank++ {
		f.completions <- rankedCompletion{rank: rank, c: transport.Completion{JobID: transport.ReadyJobID}}
	}
	return f
}

func (f *fakeFabric) Size() int { return f.size }

func (f *fakeFabric) SendAssignment(rank int, a transport.Assignment) error {
	f.mu.Lock()
	if a.JobID == transport.TerminateJobID {
		f.terminated[rank] = true
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	status := 0
	if strings.TrimSpace(string(a.Payload)) == "exit 7" {
		status = 7
	}
	go func() {
		f.completions <- rankedCompletion{rank: rank, c: transport.Completion{JobID: a.JobID, ExitStatus: status}}
	}()
	return nil
}

func (f *fakeFabric) PollCompletion(ctx context.Context) (int, transport.Completion, bool, error) {
	select {
	case rc := <-f.completions:
		return rc.rank, rc.c, true, nil
	default:
		return 0, transport.Completion{}, false, nil
	}
}

func (f *fakeFabric) RecvCompletion(ctx context.Context) (int, transport.Completion, error) {
	select {
	case rc := <-f.completions:
		return rc.rank, rc.c, nil
	case <-ctx.Done():
		return 0, transport.Completion{}, ctx.Err()
	}
}

func (f *fakeFabric) Close() error { return nil }

func writeBatch(t *testing.T, items ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch")
	var b strings.Builder
	for _, item := range items {
		b.WriteString(item)
		b.WriteString("\n#####--END\n")
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func runCoordinator(t *testing.T, size int, items ...string) (string, *fakeFabric) {
	t.Helper()

	batchPath := writeBatch(t, items...)
	logPath := filepath.Join(t.TempDir(), "job.log")
	fabric := newFakeFabric(size)

	cfg := coordinator.Config{
		BatchPath:      batchPath,
		LogPath:        logPath,
		PollInterval:   time.Millisecond,
		InitialBufSize: 64,
		MaxLineSize:    1 << 20,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, coordinator.Run(ctx, cfg, fabric))

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	return string(b), fabric
}

func TestSingleJobSingleWorker(t *testing.T) {
	logText, _ := runCoordinator(t, 2, "echo hi")

	assert.Contains(t, logText, "1 started by 1 at ")
	assert.Contains(t, logText, "1 completed by 1 at ")
}

func TestFailingJobIsLoggedFailed(t *testing.T) {
	logText, _ := runCoordinator(t, 2, "exit 7")

	assert.Contains(t, logText, "1 failed by 1 at ")
	assert.Contains(t, logText, ": 7")
}

func TestEmptyBatchTerminatesAllWorkers(t *testing.T) {
	logText, fabric := runCoordinator(t, 3)

	assert.Empty(t, strings.TrimSpace(logText))
	assert.True(t, fabric.terminated[1])
	assert.True(t, fabric.terminated[2])
}

func TestThreeJobsTwoWorkersAllCompleteNoDuplicates(t *testing.T) {
	logText, fabric := runCoordinator(t, 3, "true", "true", "true")

	for _, id := range []string{"1", "2", "3"} {
		assert.Equal(t, 1, strings.Count(logText, id+" started by "))
		assert.Equal(t, 1, strings.Count(logText, id+" completed by "))
	}
	assert.True(t, fabric.terminated[1])
	assert.True(t, fabric.terminated[2])
}
