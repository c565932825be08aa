package cli

import (
	"context"
	"crypto/tls"

	"github.com/tjper/dispatchd/internal/dispatch/transport/grpcfabric"
	"github.com/tjper/dispatchd/internal/dispatch/worker"
	"github.com/tjper/dispatchd/internal/encrypt"
)

func runWork(ctx context.Context) int {
	var tlsConfig *tls.Config
	if *certFlag != "" {
		cfg, err := encrypt.NewClientTLSConfig(*certFlag, *keyFlag, *caCertFlag)
		if err != nil {
			logger.Errorf("client tls config; error: %v", err)
			return ecTLSConfig
		}
		tlsConfig = cfg
	}

	fabric, err := grpcfabric.DialWorker(ctx, *addrFlag, tlsConfig)
	if err != nil {
		logger.Errorf("dial coordinator at %s; error: %v", *addrFlag, err)
		return ecDial
	}
	defer fabric.Close()

	if err := worker.Run(ctx, fabric); err != nil {
		logger.Errorf("worker run; error: %v", err)
		return ecWork
	}

	return ecSuccess
}
