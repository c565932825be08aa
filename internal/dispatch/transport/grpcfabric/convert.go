package grpcfabric

import (
	"github.com/tjper/dispatchd/internal/dispatch/transport"
	pb "github.com/tjper/dispatchd/proto/gen/go/dispatch/v1"
)

func toCoordinatorMessage(a transport.Assignment) *pb.CoordinatorMessage {
	return &pb.CoordinatorMessage{
		Event: &pb.CoordinatorMessage_Assignment{
			Assignment: &pb.Assignment{
				JobId:         a.JobID,
				Payload:       a.Payload,
				GroupSize:     int32(a.GroupSize),
				Rank:          int32(a.Rank),
				CorrelationId: a.CorrelationID,
			},
		},
	}
}

func toWorkerMessage(c transport.Completion) *pb.WorkerMessage {
	return &pb.WorkerMessage{
		Event: &pb.WorkerMessage_Completion{
			Completion: &pb.Completion{
				JobId:         c.JobID,
				ExitStatus:    int32(c.ExitStatus),
				CorrelationId: c.CorrelationID,
			},
		},
	}
}

func fromAssignment(a *pb.Assignment) transport.Assignment {
	return transport.Assignment{
		JobID:         a.GetJobId(),
		Payload:       a.GetPayload(),
		GroupSize:     int(a.GetGroupSize()),
		Rank:          int(a.GetRank()),
		CorrelationID: a.GetCorrelationId(),
	}
}

func fromCompletion(c *pb.Completion) transport.Completion {
	return transport.Completion{
		JobID:         c.GetJobId(),
		ExitStatus:    int(c.GetExitStatus()),
		CorrelationID: c.GetCorrelationId(),
	}
}
