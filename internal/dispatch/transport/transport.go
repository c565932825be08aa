// Package transport defines the message fabric dispatchd's coordinator and
// workers communicate over: a sized process group with typed,
// source-tagged send/recv and a non-blocking receive with poll. Any fabric
// providing these primitives suffices; internal/dispatch/transport/grpcfabric
// is the only implementation in this repo, backed by gRPC bidirectional
// streaming.
package transport

import "context"

// TerminateJobID and ReadyJobID share the sentinel value 0. TERMINATE is a
// coordinator-to-worker token (carried by Assignment); READY is a
// worker-to-coordinator token (carried by Completion). They never occupy
// the same channel direction, so the overload is safe -- each is only ever
// inspected by the side that does not send it.
const (
	TerminateJobID int64 = 0
	ReadyJobID     int64 = 0
)

// Assignment is the coordinator-to-worker message: a job id plus its
// script payload. JobID == TerminateJobID means "no more work, exit
// cleanly" and carries no payload. GroupSize is only meaningful on the
// first Assignment a worker receives, communicating the worker's own N.
// Rank is sent on every Assignment so the receiving worker learns its own
// rank, which the coordinator assigns by stream-connection order -- unlike
// MPI, where rank is known locally before any message is exchanged.
// CorrelationID identifies this job across the coordinator and worker log
// streams; the worker echoes it back on the matching Completion.
type Assignment struct {
	JobID         int64
	Payload       []byte
	GroupSize     int
	Rank          int
	CorrelationID string
}

// Completion is the worker-to-coordinator message: a job id plus its exit
// status. JobID == ReadyJobID means "I am freshly ready and have nothing
// to report". CorrelationID echoes the Assignment's CorrelationID; it is
// empty on the initial READY Completion, which reports on no job.
type Completion struct {
	JobID         int64
	ExitStatus    int
	CorrelationID string
}

// CoordinatorSide is the set of fabric primitives the coordinator loop
// needs. A Completion received with a given rank always originates from
// the worker assigned that rank.
type CoordinatorSide interface {
	// Size is the total process count N (coordinator + workers).
	Size() int

	// SendAssignment sends a to the worker identified by rank.
	SendAssignment(rank int, a Assignment) error

	// PollCompletion performs a non-blocking wildcard receive, returning
	// ok == false immediately if no Completion is available. Callers
	// wanting MPI_Irecv/MPI_Test/usleep semantics loop on PollCompletion,
	// sleeping interval between polls themselves.
	PollCompletion(ctx context.Context) (rank int, c Completion, ok bool, err error)

	// RecvCompletion performs a blocking wildcard receive for the next
	// Completion from any worker.
	RecvCompletion(ctx context.Context) (rank int, c Completion, err error)

	// Close releases fabric resources.
	Close() error
}

// WorkerSide is the set of fabric primitives a single worker needs.
type WorkerSide interface {
	// SendReady announces this worker has no prior job to report.
	SendReady() error

	// RecvAssignment blocks for the coordinator's next Assignment.
	RecvAssignment(ctx context.Context) (Assignment, error)

	// SendCompletion reports a finished job's exit status.
	SendCompletion(c Completion) error

	// Close releases fabric resources.
	Close() error
}
