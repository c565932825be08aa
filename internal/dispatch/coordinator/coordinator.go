// Package coordinator implements the dispatchd coordinator loop: the
// central pull-based scheduling algorithm that matches batch work items to
// ready workers over a transport.CoordinatorSide.
package coordinator

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tjper/dispatchd/internal/dispatch/batch"
	"github.com/tjper/dispatchd/internal/dispatch/hook"
	"github.com/tjper/dispatchd/internal/dispatch/joblog"
	"github.com/tjper/dispatchd/internal/dispatch/transport"
	"github.com/tjper/dispatchd/internal/log"
)

var logger = log.New(os.Stdout, "coordinator")

var tracer = otel.Tracer("github.com/tjper/dispatchd/internal/dispatch/coordinator")

// Config holds the coordinator's CLI-supplied parameters.
type Config struct {
	// PrologPath and EpilogPath are optional scripts run before dispatch
	// begins and after drain completes.
	PrologPath, EpilogPath string
	// BatchPath is the required batch file.
	BatchPath string
	// LogPath is an optional job log destination.
	LogPath string
	// PollInterval is the sleep between non-blocking completion polls.
	PollInterval time.Duration
	// InitialBufSize and MaxLineSize configure the batch reader.
	InitialBufSize, MaxLineSize int
}

// Run executes the full coordinator lifecycle: prolog, main dispatch loop,
// drain, postlude, epilog. fabric.Close is not called by Run; the caller
// owns the fabric's lifetime.
func Run(ctx context.Context, cfg Config, fabric transport.CoordinatorSide) error {
	if fabric.Size() < 2 {
		return fmt.Errorf("startup error: group size %d; need at least 2 processes (1 coordinator + >=1 worker)", fabric.Size())
	}

	hook.Run(ctx, "prolog", cfg.PrologPath)

	var jlog *joblog.Log
	if cfg.LogPath != "" {
		var err error
		jlog, err = joblog.Open(cfg.LogPath)
		if err != nil {
			logger.Warnf("can't open log file; path: %s, error: %v", cfg.LogPath, err)
			jlog = nil
		}
	}
	defer func() {
		if jlog != nil {
			jlog.Close()
		}
	}()

	reader, batchErr := openBatch(cfg)
	if batchErr != nil {
		return fmt.Errorf("startup error: %w", batchErr)
	}
	defer reader.Close()

	live := fabric.Size() - 1
	nextJobID, err := mainLoop(ctx, cfg, fabric, reader, jlog)
	if err != nil {
		return fmt.Errorf("protocol error: %w", err)
	}

	if err := drain(ctx, fabric, jlog, live); err != nil {
		return fmt.Errorf("protocol error: %w", err)
	}

	logger.Infof("dispatch complete; jobs: %d", nextJobID-1)

	if jlog != nil {
		if err := jlog.Close(); err != nil {
			logger.Warnf("closing job log; error: %v", err)
		}
		jlog = nil
	}

	hook.Run(ctx, "epilog", cfg.EpilogPath)
	return nil
}

type closableReader struct {
	*batch.Reader
	file *os.File
}

func (c *closableReader) Close() error {
	if c.file == nil {
		return nil
	}
	return c.file.Close()
}

func openBatch(cfg Config) (*closableReader, error) {
	f, err := os.Open(cfg.BatchPath)
	if err != nil {
		return nil, fmt.Errorf("can't open batch file '%s': %w", cfg.BatchPath, err)
	}
	return &closableReader{Reader: batch.NewReader(f, cfg.InitialBufSize, cfg.MaxLineSize), file: f}, nil
}

// mainLoop implements spec.md's §4.D main loop. It returns the next unused
// job id (i.e. K+1 for K dispatched items).
func mainLoop(ctx context.Context, cfg Config, fabric transport.CoordinatorSide, reader *closableReader, jlog *joblog.Log) (int64, error) {
	ctx, span := tracer.Start(ctx, "coordinator.mainLoop")
	defer span.End()

	jobID := int64(1)
	for {
		item, err := reader.Next()
		if err == io.EOF {
			return jobID, nil
		}
		if err != nil {
			return jobID, fmt.Errorf("read batch item: %w", err)
		}

		rank, completion, err := pollCompletion(ctx, fabric, cfg.PollInterval)
		if err != nil {
			return jobID, err
		}
		if completion.JobID > 0 {
			logger.Infof("correlation %s: rank %d reported completion for job %d", completion.CorrelationID, rank, completion.JobID)
			if jlog != nil {
				if err := jlog.Completed(rank, completion.JobID, completion.ExitStatus); err != nil {
					logger.Warnf("write completion record; error: %v", err)
				}
			}
		}

		correlationID := uuid.New().String()
		assignment := transport.Assignment{JobID: jobID, Payload: item, GroupSize: fabric.Size(), Rank: rank, CorrelationID: correlationID}
		if err := fabric.SendAssignment(rank, assignment); err != nil {
			return jobID, fmt.Errorf("send assignment to rank %d: %w", rank, err)
		}
		logger.Infof("correlation %s: dispatched job %d to rank %d", correlationID, jobID, rank)
		if jlog != nil {
			if err := jlog.Started(rank, jobID); err != nil {
				logger.Warnf("write start record; error: %v", err)
			}
		}

		span.AddEvent("dispatched", attribute.Int64("job_id", jobID), attribute.Int("rank", rank), attribute.String("correlation_id", correlationID))
		jobID++
	}
}

// pollCompletion posts a non-blocking wildcard receive and polls it with
// interval between tries, exactly mirroring MPI_Irecv + MPI_Test + usleep.
func pollCompletion(ctx context.Context, fabric transport.CoordinatorSide, interval time.Duration) (int, transport.Completion, error) {
	for {
		rank, completion, ok, err := fabric.PollCompletion(ctx)
		if err != nil {
			return 0, transport.Completion{}, err
		}
		if ok {
			return rank, completion, nil
		}
		select {
		case <-ctx.Done():
			return 0, transport.Completion{}, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// drain implements spec.md's §4.D drain phase: receive one final
// completion from each live worker, then terminate it.
func drain(ctx context.Context, fabric transport.CoordinatorSide, jlog *joblog.Log, live int) error {
	ctx, span := tracer.Start(ctx, "coordinator.drain")
	defer span.End()

	var result error
	for live > 0 {
		rank, completion, err := fabric.RecvCompletion(ctx)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("drain receive: %w", err))
			break
		}
		if completion.JobID > 0 {
			logger.Infof("correlation %s: rank %d reported completion for job %d", completion.CorrelationID, rank, completion.JobID)
			if jlog != nil {
				if err := jlog.Completed(rank, completion.JobID, completion.ExitStatus); err != nil {
					logger.Warnf("write completion record; error: %v", err)
				}
			}
		}
		if err := fabric.SendAssignment(rank, transport.Assignment{JobID: transport.TerminateJobID, Rank: rank}); err != nil {
			result = multierror.Append(result, fmt.Errorf("terminate rank %d: %w", rank, err))
		}
		live--
		span.AddEvent("terminated", attribute.Int("rank", rank))
	}
	return result
}
