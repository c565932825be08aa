// Package worker implements the dispatchd worker loop: announce ready,
// receive an assignment, run it, report completion, repeat until
// terminated.
package worker

import (
	"context"
	"fmt"
	"os"

	"github.com/tjper/dispatchd/internal/dispatch/executor"
	"github.com/tjper/dispatchd/internal/dispatch/transport"
	"github.com/tjper/dispatchd/internal/log"
)

var logger = log.New(os.Stdout, "worker")

// Run drives the worker loop against fabric until a TERMINATE assignment
// is received, or ctx is canceled, or a protocol violation occurs. The
// worker has no rank of its own until the coordinator's first Assignment
// supplies one -- rank is assigned by stream-connection order, not known
// locally the way an MPI launcher would assign it -- so Run's log lines
// carry no rank until that first Assignment arrives.
func Run(ctx context.Context, fabric transport.WorkerSide) error {
	if err := fabric.SendReady(); err != nil {
		return fmt.Errorf("send ready; error: %w", err)
	}
	logger.Infof("sent ready")

	var rank, size int
	for {
		assignment, err := fabric.RecvAssignment(ctx)
		if err != nil {
			return fmt.Errorf("receive assignment; error: %w", err)
		}
		rank = assignment.Rank
		logger.Infof("correlation %s: rank %d received job %d, length %d", assignment.CorrelationID, rank, assignment.JobID, len(assignment.Payload))

		if assignment.JobID == transport.TerminateJobID {
			logger.Infof("rank %d terminating", rank)
			return nil
		}
		if assignment.GroupSize > 0 {
			size = assignment.GroupSize
		}
		if assignment.JobID < 0 {
			return fmt.Errorf("protocol violation: coordinator sent unknown command code %d", assignment.JobID)
		}

		exitStatus, err := executor.Run(ctx, assignment.Payload, executor.Identity{Rank: rank, Size: size})
		if err != nil {
			return fmt.Errorf("fatal worker error: %w", err)
		}
		logger.Infof("correlation %s: job %d done on rank %d, status %d", assignment.CorrelationID, assignment.JobID, rank, exitStatus)

		if err := fabric.SendCompletion(transport.Completion{JobID: assignment.JobID, ExitStatus: exitStatus, CorrelationID: assignment.CorrelationID}); err != nil {
			return fmt.Errorf("send completion; error: %w", err)
		}
	}
}
