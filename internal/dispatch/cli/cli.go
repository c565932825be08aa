// Package cli defines the dispatchd command-line surface: subcommand
// dispatch, flag parsing, and config-file layering, in the style of
// teleport's own jobworker/cli package.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tjper/dispatchd/internal/dispatch"
	"github.com/tjper/dispatchd/internal/dispatch/config"
	"github.com/tjper/dispatchd/internal/log"
)

var logger = log.New(os.Stderr, "cli")

var (
	prologFlag = flag.String("p", "", "path to prolog script, run once before dispatch begins")
	batchFlag  = flag.String("b", "", "path to batch file (required for serve)")
	epilogFlag = flag.String("e", "", "path to epilog script, run once after drain completes")
	logFlag    = flag.String("l", "", "path to job log file")
	sleepFlag  = flag.Int("s", 200000, "poll sleep interval, in microseconds, for the coordinator's non-blocking receive loop")
	verboseFlag = flag.Bool("v", false, "verbose diagnostics to stderr")
	helpFlag   = flag.Bool("h", false, "print help and exit 0")
	configFlag = flag.String("config", "", "optional YAML config file layered beneath the flags above")

	certFlag   = flag.String("cert", "", "path to x509 certificate")
	keyFlag    = flag.String("key", "", "path to private key")
	caCertFlag = flag.String("ca_cert", "", "path to CA certificate")
	portFlag   = flag.Int("port", 8080, "port serve listens on")
	addrFlag   = flag.String("addr", "localhost:8080", "coordinator address, for work")
	sizeFlag   = flag.Int("size", 0, "size of the worker group, required by serve (N including the coordinator)")
)

const (
	ecSuccess = iota
	// ecUnrecognized indicates the subcommand was missing or not recognized.
	ecUnrecognized
	// ecConfig indicates the config file could not be loaded.
	ecConfig
	// ecMissingBatch indicates -b was not supplied to serve, or -size was
	// missing or below 2.
	ecMissingBatch
	// ecTLSConfig indicates the TLS materials could not be loaded.
	ecTLSConfig
	// ecListen indicates the dispatch API was unable to listen.
	ecListen
	// ecServe indicates the coordinator loop exited with an error.
	ecServe
	// ecDial indicates work could not connect to the coordinator.
	ecDial
	// ecWork indicates the worker loop exited with an error.
	ecWork
	// ecMonitor indicates the monitor TUI exited with an error.
	ecMonitor
)

// Run is the entrypoint of the dispatchd CLI.
func Run() int {
	flag.Parse()
	log.SetVerbose(*verboseFlag)

	if *helpFlag {
		return help("")
	}
	if len(os.Args) < 2 {
		return help("Too few arguments")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	last := len(os.Args) - 1
	switch v := os.Args[last]; v {
	case dispatch.Serve:
		return runServe(ctx)
	case dispatch.Work:
		return runWork(ctx)
	case dispatch.Monitor:
		return runMonitor(ctx)
	default:
		return help(fmt.Sprintf("Unrecognized subcommand %q.", v))
	}
}

// layered merges a config.File underneath whichever flags were explicitly
// set; flags always win, exactly as documented in the file's own flag
// descriptions.
type layered struct {
	prolog, batch, epilog, logPath string
	pollInterval                    time.Duration
}

func layer() (layered, error) {
	file, err := config.Load(*configFlag)
	if err != nil {
		return layered{}, err
	}

	l := layered{
		prolog:       *prologFlag,
		batch:        *batchFlag,
		epilog:       *epilogFlag,
		logPath:      *logFlag,
		pollInterval: time.Duration(*sleepFlag) * time.Microsecond,
	}
	if l.prolog == "" {
		l.prolog = file.Prolog
	}
	if l.batch == "" {
		l.batch = file.Batch
	}
	if l.epilog == "" {
		l.epilog = file.Epilog
	}
	if l.logPath == "" {
		l.logPath = file.Log
	}
	sleepSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "s" {
			sleepSet = true
		}
	})
	if !sleepSet && file.Sleep > 0 {
		l.pollInterval = time.Duration(file.Sleep) * time.Microsecond
	}
	return l, nil
}

// help outputs a general overview of the dispatchd executable to the user.
// The text argument may be used to add a detailed help message.
func help(text string) int {
	var b strings.Builder
	if text != "" {
		fmt.Fprintf(&b, "\nNotice: %s\n", text)
	}

	b.WriteString(`
Dispatchd dispatches shell-script work items from a batch file to a pool
of workers over a grpc fabric, recording per-job start/completion with
exit status to a log.

Usage:
  dispatchd [flags] command

Available Commands:
  serve       Run the coordinator: read the batch file, dispatch jobs to
              connecting workers, drain final completions, exit.
  work        Run a worker: connect to the coordinator, execute assigned
              jobs under a shell, report completions, exit on terminate.
  monitor     Tail a running coordinator's job log in a terminal UI. Does
              not connect to the coordinator; reads the log file only.

Flags:
  -p          path to prolog script
  -b          path to batch file (required by serve)
  -e          path to epilog script
  -l          path to job log file
  -s          poll sleep interval in microseconds
  -v          verbose diagnostics to stderr
  -h          print this help and exit 0
  -config     optional YAML config file, layered beneath the above

  -cert       x509 certificate (serve, work)
  -key        private key (serve, work)
  -ca_cert    CA certificate (serve, work)
  -port       port serve listens on
  -addr       coordinator address (work)
  -size       worker group size, including the coordinator (serve)
`)
	fmt.Fprint(os.Stdout, b.String())
	if text == "" {
		return ecSuccess
	}
	return ecUnrecognized
}
