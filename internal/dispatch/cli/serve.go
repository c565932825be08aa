package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/tjper/dispatchd/internal/dispatch/coordinator"
	"github.com/tjper/dispatchd/internal/dispatch/tracing"
	"github.com/tjper/dispatchd/internal/dispatch/transport/grpcfabric"
	"github.com/tjper/dispatchd/internal/encrypt"
	"github.com/tjper/dispatchd/internal/validator"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

func runServe(ctx context.Context) int {
	shutdownTracing, err := tracing.Setup(os.Stderr)
	if err != nil {
		logger.Warnf("tracing setup; error: %v", err)
	} else {
		defer shutdownTracing(context.Background())
	}

	l, err := layer()
	if err != nil {
		logger.Errorf("load config; error: %v", err)
		return ecConfig
	}

	v := validator.New()
	v.Assert(l.batch != "", "missing required -b batch file")
	v.Assert(*sizeFlag >= 2, "missing or invalid -size; must be >= 2")
	if err := v.Err(); err != nil {
		logger.Errorf("%s", validator.Format(err.Error()))
		return ecMissingBatch
	}

	var opts []grpc.ServerOption
	if *certFlag != "" {
		tlsConfig, err := encrypt.NewServermTLSConfig(*certFlag, *keyFlag, *caCertFlag)
		if err != nil {
			logger.Errorf("server tls config; error: %v", err)
			return ecTLSConfig
		}
		opts = append(opts, grpc.Creds(credentials.NewTLS(tlsConfig)))
	}
	srv := grpc.NewServer(opts...)

	coord := grpcfabric.NewCoordinator(*sizeFlag)
	coord.Register(srv)

	addr := fmt.Sprintf(":%d", *portFlag)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Errorf("listen on %s; error: %v", addr, err)
		return ecListen
	}
	defer lis.Close()

	go func() {
		if err := srv.Serve(lis); err != nil {
			logger.Errorf("grpc serve on %s; error: %v", addr, err)
		}
	}()
	defer srv.GracefulStop()

	if err := coord.AwaitWorkers(ctx); err != nil {
		logger.Errorf("await workers; error: %v", err)
		return ecServe
	}

	cfg := coordinator.Config{
		PrologPath:     l.prolog,
		EpilogPath:     l.epilog,
		BatchPath:      l.batch,
		LogPath:        l.logPath,
		PollInterval:   pollIntervalOrDefault(l.pollInterval),
		InitialBufSize: 4096,
		MaxLineSize:    1 << 20,
	}
	if err := coordinator.Run(ctx, cfg, coord); err != nil {
		logger.Errorf("coordinator run; error: %v", err)
		return ecServe
	}

	return ecSuccess
}

func pollIntervalOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 200 * time.Microsecond
	}
	return d
}
