package grpcfabric_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/tjper/dispatchd/internal/dispatch/transport"
	"github.com/tjper/dispatchd/internal/dispatch/transport/grpcfabric"
)

// TestCoordinatorWorkerRoundTrip dials a real grpcfabric.Coordinator/Worker
// pair over an in-memory bufconn listener and round-trips one
// ready->assignment->completion->terminate exchange through the real proto
// wire codec, rather than the fakeFabric stand-ins coordinator_test.go and
// worker_test.go exercise. This is the path XXX_OneofWrappers has to be
// correct for -- without it every Send above serializes an empty envelope
// and GetAssignment/GetCompletion come back nil.
func TestCoordinatorWorkerRoundTrip(t *testing.T) {
	const bufSize = 1 << 20
	lis := bufconn.Listen(bufSize)
	t.Cleanup(func() { lis.Close() })

	srv := grpc.NewServer()
	coord := grpcfabric.NewCoordinator(2)
	coord.Register(srv)

	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := grpc.DialContext(ctx, "bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
	)
	require.NoError(t, err)

	worker, err := grpcfabric.NewWorkerFromConn(ctx, conn)
	require.NoError(t, err)
	t.Cleanup(func() { worker.Close() })

	require.NoError(t, coord.AwaitWorkers(ctx))

	require.NoError(t, worker.SendReady())

	readyRank, ready, err := coord.RecvCompletion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, readyRank)
	assert.Equal(t, transport.ReadyJobID, ready.JobID)

	const payload = "echo hi\n"
	assignment := transport.Assignment{
		JobID:         1,
		Payload:       []byte(payload),
		GroupSize:     2,
		Rank:          1,
		CorrelationID: "corr-1",
	}
	require.NoError(t, coord.SendAssignment(1, assignment))

	got, err := worker.RecvAssignment(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.JobID)
	assert.Equal(t, payload, string(got.Payload))
	assert.Equal(t, 2, got.GroupSize)
	assert.Equal(t, 1, got.Rank)
	assert.Equal(t, "corr-1", got.CorrelationID)

	completion := transport.Completion{JobID: 1, ExitStatus: 0, CorrelationID: got.CorrelationID}
	require.NoError(t, worker.SendCompletion(completion))

	rank, gotCompletion, err := coord.RecvCompletion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	assert.Equal(t, int64(1), gotCompletion.JobID)
	assert.Equal(t, 0, gotCompletion.ExitStatus)
	assert.Equal(t, "corr-1", gotCompletion.CorrelationID)

	require.NoError(t, coord.SendAssignment(1, transport.Assignment{JobID: transport.TerminateJobID, Rank: 1}))

	term, err := worker.RecvAssignment(ctx)
	require.NoError(t, err)
	assert.Equal(t, transport.TerminateJobID, term.JobID)
}
