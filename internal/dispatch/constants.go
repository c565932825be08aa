// Package dispatch contains constructs shared across the dispatch
// subpackages: the batch sentinel and the subcommand names. The job id
// sentinels shared between the coordinator and worker loops live in
// internal/dispatch/transport.
package dispatch

const (
	// Serve is the subcommand that runs the coordinator.
	Serve = "serve"
	// Work is the subcommand that runs a worker.
	Work = "work"
	// Monitor is the subcommand that tails a job log.
	Monitor = "monitor"
)

// Separator is the batch file line that delimits one work item from the
// next. A line exactly equal to Separator (without its trailing newline)
// ends the current item.
const Separator = "#####--END"
