// Package batch provides a reader for dispatchd batch files: a sequence of
// shell-script work items separated by a sentinel line.
package batch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/tjper/dispatchd/internal/dispatch"
)

// DefaultMaxLineSize is the maximum length of a single line within a work
// item. It mirrors the 1 MiB WORK_STR_LENGTH limit of the original
// implementation.
const DefaultMaxLineSize = 1 << 20

// NewReader creates a Reader that splits r on dispatch.Separator lines. Each
// individual line must be no longer than maxLineSize bytes; initialBufSize
// seeds the line scanner's backing array, which grows on demand up to
// maxLineSize. A work item itself (the accumulation of many lines) has no
// size limit of its own -- it grows with the natural growable buffer
// (bytes.Buffer) rather than the manual calloc/realloc doubling the
// original C reader used.
func NewReader(r io.Reader, initialBufSize, maxLineSize int) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBufSize), maxLineSize)
	scanner.Split(bufio.ScanLines)
	return &Reader{scanner: scanner}
}

// Reader yields successive work items from a batch stream. It is a finite,
// forward-only, lazy sequence; it is not restartable.
type Reader struct {
	scanner *bufio.Scanner
}

// Next returns the next work item. It returns io.EOF once the stream is
// exhausted. Empty items (two sentinels back to back, or a leading
// sentinel) are skipped transparently. Next fails if a single line exceeds
// the configured maxLineSize, or the underlying stream errors mid-item.
func (r *Reader) Next() ([]byte, error) {
	var item bytes.Buffer
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == dispatch.Separator {
			if item.Len() == 0 {
				continue
			}
			return item.Bytes(), nil
		}
		item.WriteString(line)
		item.WriteByte('\n')
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read batch item; error: %w", err)
	}
	// End of stream: a non-empty accumulated buffer is still a well-formed
	// final item, even without a trailing separator.
	if item.Len() > 0 {
		return item.Bytes(), nil
	}
	return nil, io.EOF
}
