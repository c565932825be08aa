// Command dispatchd dispatches shell-script work items from a batch file
// to a pool of workers over a grpc fabric. See internal/dispatch/cli for
// the full command-line surface.
package main

import (
	"os"

	"github.com/tjper/dispatchd/internal/dispatch/cli"
)

func main() {
	os.Exit(cli.Run())
}
