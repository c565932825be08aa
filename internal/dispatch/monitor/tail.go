// Package monitor provides a read-only, outside-the-process viewer of a
// dispatchd job log: a file tailer plus a bubbletea TUI. It never talks to
// the coordinator or workers -- it only watches the log file the
// coordinator already writes (internal/dispatch/joblog), so it adds no
// query/control surface to the running dispatch loop.
package monitor

import (
	"bufio"
	"context"
	"os"

	"github.com/fsnotify/fsnotify"
)

// Tail streams the lines already in path to out, then each newly appended
// line, until ctx is canceled or the watcher reports an error.
// It is grounded on the fsnotify-based config watchers used elsewhere in
// the example pack (zjrosen/perles watches its config file the same way);
// here it watches a growing log file instead of a config file.
func Tail(ctx context.Context, path string, out chan<- string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	reader := bufio.NewReader(f)
	drain := func() {
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case out <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}
	drain()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				drain()
			}
		}
	}
}
