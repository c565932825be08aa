package cli

import (
	"context"

	"github.com/tjper/dispatchd/internal/dispatch/monitor"
)

func runMonitor(ctx context.Context) int {
	l, err := layer()
	if err != nil {
		logger.Errorf("load config; error: %v", err)
		return ecConfig
	}
	if l.logPath == "" {
		logger.Errorf("missing required -l log file to monitor")
		return ecMonitor
	}

	if _, err := monitor.Program(l.logPath).Run(); err != nil {
		logger.Errorf("monitor run; error: %v", err)
		return ecMonitor
	}
	return ecSuccess
}
