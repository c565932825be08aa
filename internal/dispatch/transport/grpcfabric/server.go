// Package grpcfabric implements the dispatchd message transport (see
// internal/dispatch/transport) over a gRPC bidirectional stream per
// worker. A worker's stream identity plays the role of an MPI rank: ranks
// are assigned 1..N-1 in the order streams are accepted.
package grpcfabric

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"google.golang.org/grpc"

	"github.com/tjper/dispatchd/internal/dispatch/transport"
	"github.com/tjper/dispatchd/internal/log"
	pb "github.com/tjper/dispatchd/proto/gen/go/dispatch/v1"
)

var logger = log.New(os.Stdout, "grpcfabric")

type rankedCompletion struct {
	rank int
	c    transport.Completion
}

// NewCoordinator creates a Coordinator sized for size total processes
// (1 coordinator + size-1 workers). Call Register to attach it to a
// *grpc.Server, then Serve that server; AwaitWorkers blocks until size-1
// workers have connected.
func NewCoordinator(size int) *Coordinator {
	return &Coordinator{
		size:        size,
		streams:     make(map[int]pb.Dispatch_StreamServer),
		next:        1,
		completions: make(chan rankedCompletion, size),
		allJoined:   make(chan struct{}),
	}
}

// Coordinator implements transport.CoordinatorSide and pb.DispatchServer.
type Coordinator struct {
	size int

	mu      sync.Mutex
	streams map[int]pb.Dispatch_StreamServer
	next    int

	allJoinedOnce sync.Once
	allJoined     chan struct{}

	completions chan rankedCompletion
}

var _ pb.DispatchServer = (*Coordinator)(nil)
var _ transport.CoordinatorSide = (*Coordinator)(nil)

// Register attaches the Coordinator to srv.
func (c *Coordinator) Register(srv *grpc.Server) {
	pb.RegisterDispatchServer(srv, c)
}

// Size returns N, the total process count.
func (c *Coordinator) Size() int { return c.size }

// AwaitWorkers blocks until size-1 workers have opened their stream.
func (c *Coordinator) AwaitWorkers(ctx context.Context) error {
	select {
	case <-c.allJoined:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stream implements pb.DispatchServer. It assigns the connecting worker a
// rank, then forwards every Completion it sends onto the shared
// completions channel until the stream ends.
func (c *Coordinator) Stream(stream pb.Dispatch_StreamServer) error {
	rank, err := c.join(stream)
	if err != nil {
		return err
	}
	logger.Infof("worker joined; rank: %d", rank)

	for {
		msg, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		completion := msg.GetCompletion()
		if completion == nil {
			return fmt.Errorf("protocol violation: worker %d sent non-completion message", rank)
		}

		c.completions <- rankedCompletion{rank: rank, c: fromCompletion(completion)}
	}
}

func (c *Coordinator) join(stream pb.Dispatch_StreamServer) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.next > c.size-1 {
		return 0, fmt.Errorf("group already has %d workers", c.size-1)
	}
	rank := c.next
	c.next++
	c.streams[rank] = stream

	if len(c.streams) == c.size-1 {
		c.allJoinedOnce.Do(func() { close(c.allJoined) })
	}
	return rank, nil
}

// SendAssignment implements transport.CoordinatorSide.
func (c *Coordinator) SendAssignment(rank int, a transport.Assignment) error {
	c.mu.Lock()
	stream, ok := c.streams[rank]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("send assignment: unknown worker rank %d", rank)
	}
	return stream.Send(toCoordinatorMessage(a))
}

// PollCompletion implements transport.CoordinatorSide: a non-blocking
// wildcard receive. The caller sleeps between polls itself -- this mirrors
// MPI_Irecv + MPI_Test, which return immediately whether or not a message
// has arrived.
func (c *Coordinator) PollCompletion(ctx context.Context) (int, transport.Completion, bool, error) {
	select {
	case rc, ok := <-c.completions:
		if !ok {
			return 0, transport.Completion{}, false, io.EOF
		}
		return rc.rank, rc.c, true, nil
	case <-ctx.Done():
		return 0, transport.Completion{}, false, ctx.Err()
	default:
		return 0, transport.Completion{}, false, nil
	}
}

// RecvCompletion implements transport.CoordinatorSide: a blocking wildcard
// receive, used during drain.
func (c *Coordinator) RecvCompletion(ctx context.Context) (int, transport.Completion, error) {
	select {
	case rc, ok := <-c.completions:
		if !ok {
			return 0, transport.Completion{}, io.EOF
		}
		return rc.rank, rc.c, nil
	case <-ctx.Done():
		return 0, transport.Completion{}, ctx.Err()
	}
}

// Close implements transport.CoordinatorSide.
func (c *Coordinator) Close() error {
	close(c.completions)
	return nil
}
