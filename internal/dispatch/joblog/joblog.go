// Package joblog appends timestamped job start/completion records to a
// plain text log file.
package joblog

import (
	"fmt"
	"os"
	"sync"
	"time"

	ierrors "github.com/tjper/dispatchd/internal/errors"
)

// timeLayout mirrors the asctime-style "Mon Jan  2 15:04:05 2006" form the
// original implementation's logStartJob/logEndJob produced via asctime(3).
const timeLayout = "Mon Jan  2 15:04:05 2006"

// Open creates or truncates the log file at path. The caller must Close the
// returned Log when done.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open job log; error: %w", err)
	}
	return &Log{file: f}, nil
}

// Log is an append-only, flush-after-every-write job log. Only the
// coordinator writes to a Log; concurrent writers are out of scope.
type Log struct {
	mutex sync.Mutex
	file  *os.File
}

// Started appends a start record for jobID, dispatched to worker rank.
func (l *Log) Started(rank int, jobID int64) error {
	return l.write(fmt.Sprintf("%d started by %d at %s\n", jobID, rank, now()))
}

// Completed appends a completion record for jobID, run by worker rank,
// choosing the "completed" or "failed" shape based on exitStatus.
func (l *Log) Completed(rank int, jobID int64, exitStatus int) error {
	if exitStatus == 0 {
		return l.write(fmt.Sprintf("%d completed by %d at %s\n", jobID, rank, now()))
	}
	return l.write(fmt.Sprintf("%d failed by %d at %s: %d\n", jobID, rank, now(), exitStatus))
}

// Close closes the underlying log file.
func (l *Log) Close() error {
	return ierrors.Wrap(l.file.Close())
}

func (l *Log) write(line string) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, err := l.file.WriteString(line); err != nil {
		return ierrors.Wrap(fmt.Errorf("append job log record; error: %w", err))
	}
	// Flush immediately so an external observer tailing the file sees
	// progress in real time -- there is no internal buffering to flush
	// beyond the OS write itself, so Sync is the closest equivalent to the
	// original's fflush(logFp).
	return l.file.Sync()
}

var nowFunc = time.Now

func now() string {
	return nowFunc().Format(timeLayout)
}
