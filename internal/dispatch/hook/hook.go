// Package hook runs the coordinator's optional prolog and epilog scripts.
package hook

import (
	"context"
	"os"

	"github.com/tjper/dispatchd/internal/dispatch/executor"
	"github.com/tjper/dispatchd/internal/log"
)

var logger = log.New(os.Stdout, "hook")

// Run runs the script at path under executor.RunHook if path is non-empty.
// A nonzero exit is warned, not fatal -- Run never returns an error for a
// nonzero hook exit, only for a missing path is this a no-op. name is used
// only for logging ("prolog" or "epilog").
func Run(ctx context.Context, name, path string) {
	if path == "" {
		return
	}

	logger.Infof("starting %s; path: %s", name, path)
	code, err := executor.RunHook(ctx, path)
	if err != nil {
		logger.Warnf("%s could not be run; path: %s, error: %v", name, path, err)
		return
	}
	if code != 0 {
		logger.Warnf("%s exited with status %d", name, code)
		return
	}
	logger.Infof("%s done with status 0", name)
}
