package worker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjper/dispatchd/internal/dispatch/transport"
	"github.com/tjper/dispatchd/internal/dispatch/worker"
)

// fakeFabric is a scripted transport.WorkerSide: RecvAssignment returns the
// next entry in assignments each call; SendCompletion/SendReady record
// their arguments for assertions.
type fakeFabric struct {
	assignments []transport.Assignment
	next        int

	readySent   bool
	completions []transport.Completion
}

func (f *fakeFabric) SendReady() error {
	f.readySent = true
	return nil
}

func (f *fakeFabric) RecvAssignment(ctx context.Context) (transport.Assignment, error) {
	a := f.assignments[f.next]
	f.next++
	return a, nil
}

func (f *fakeFabric) SendCompletion(c transport.Completion) error {
	f.completions = append(f.completions, c)
	return nil
}

func (f *fakeFabric) Close() error { return nil }

func TestRunExecutesJobsThenTerminates(t *testing.T) {
	fabric := &fakeFabric{
		assignments: []transport.Assignment{
			{JobID: 1, Payload: []byte("exit 0"), GroupSize: 2, Rank: 1},
			{JobID: 2, Payload: []byte("exit 7"), Rank: 1},
			{JobID: transport.TerminateJobID, Rank: 1},
		},
	}

	err := worker.Run(context.Background(), fabric)
	require.NoError(t, err)

	assert.True(t, fabric.readySent)
	require.Len(t, fabric.completions, 2)
	assert.Equal(t, transport.Completion{JobID: 1, ExitStatus: 0}, fabric.completions[0])
	assert.Equal(t, transport.Completion{JobID: 2, ExitStatus: 7}, fabric.completions[1])
}

func TestRunRejectsUnknownCommandCode(t *testing.T) {
	fabric := &fakeFabric{
		assignments: []transport.Assignment{
			{JobID: -1, Rank: 1},
		},
	}

	err := worker.Run(context.Background(), fabric)
	require.Error(t, err)
}
