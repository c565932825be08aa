package grpcfabric

import (
	"context"
	"crypto/tls"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/tjper/dispatchd/internal/dispatch/transport"
	ierrors "github.com/tjper/dispatchd/internal/errors"
	pb "github.com/tjper/dispatchd/proto/gen/go/dispatch/v1"
)

// DialWorker connects to the coordinator at addr and opens the worker's
// single, lifetime Dispatch stream. If tlsConfig is nil the connection is
// unencrypted, suitable only for local development.
func DialWorker(ctx context.Context, addr string, tlsConfig *tls.Config) (*Worker, error) {
	creds := insecure.NewCredentials()
	if tlsConfig != nil {
		creds = credentials.NewTLS(tlsConfig)
	}

	conn, err := grpc.DialContext(ctx, addr,
		grpc.WithTransportCredentials(creds),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, ierrors.Wrap(fmt.Errorf("dial coordinator; error: %w", err))
	}

	w, err := NewWorkerFromConn(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return w, nil
}

// NewWorkerFromConn opens a worker's Dispatch stream over an already
// established conn. DialWorker is the usual entry point; this is exposed
// separately for callers (and tests) that set up their own
// *grpc.ClientConn, e.g. against an in-memory bufconn listener.
func NewWorkerFromConn(ctx context.Context, conn *grpc.ClientConn) (*Worker, error) {
	client := pb.NewDispatchClient(conn)
	stream, err := client.Stream(ctx)
	if err != nil {
		return nil, ierrors.Wrap(fmt.Errorf("open dispatch stream; error: %w", err))
	}

	return &Worker{conn: conn, stream: stream}, nil
}

// Worker implements transport.WorkerSide over a single gRPC stream.
type Worker struct {
	conn   *grpc.ClientConn
	stream pb.Dispatch_StreamClient
}

var _ transport.WorkerSide = (*Worker)(nil)

// SendReady implements transport.WorkerSide.
func (w *Worker) SendReady() error {
	return w.stream.Send(toWorkerMessage(transport.Completion{JobID: transport.ReadyJobID}))
}

// RecvAssignment implements transport.WorkerSide.
func (w *Worker) RecvAssignment(ctx context.Context) (transport.Assignment, error) {
	type result struct {
		a   transport.Assignment
		err error
	}
	done := make(chan result, 1)
	go func() {
		msg, err := w.stream.Recv()
		if err != nil {
			done <- result{err: err}
			return
		}
		a := msg.GetAssignment()
		if a == nil {
			done <- result{err: fmt.Errorf("protocol violation: expected an assignment")}
			return
		}
		done <- result{a: fromAssignment(a)}
	}()

	select {
	case r := <-done:
		return r.a, r.err
	case <-ctx.Done():
		return transport.Assignment{}, ctx.Err()
	}
}

// SendCompletion implements transport.WorkerSide.
func (w *Worker) SendCompletion(c transport.Completion) error {
	return w.stream.Send(toWorkerMessage(c))
}

// Close implements transport.WorkerSide.
func (w *Worker) Close() error {
	if err := w.stream.CloseSend(); err != nil {
		return err
	}
	return w.conn.Close()
}
