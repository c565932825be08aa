package joblog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjper/dispatchd/internal/dispatch/joblog"
)

func TestLogRecordShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.log")
	l, err := joblog.Open(path)
	require.NoError(t, err)

	require.NoError(t, l.Started(1, 1))
	require.NoError(t, l.Completed(1, 1, 0))
	require.NoError(t, l.Completed(1, 2, 7))
	require.NoError(t, l.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "1 started by 1 at ")
	assert.Contains(t, lines[1], "1 completed by 1 at ")
	assert.Contains(t, lines[2], "2 failed by 1 at ")
	assert.Contains(t, lines[2], ": 7")
}

func TestLogOrdersStartBeforeCompletion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.log")
	l, err := joblog.Open(path)
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Started(1, 5))
	require.NoError(t, l.Completed(2, 3, 0))
	require.NoError(t, l.Completed(1, 5, 0))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")

	startIdx, endIdx := -1, -1
	for i, line := range lines {
		if strings.HasPrefix(line, "5 started") {
			startIdx = i
		}
		if strings.HasPrefix(line, "5 completed") {
			endIdx = i
		}
	}
	require.NotEqual(t, -1, startIdx)
	require.NotEqual(t, -1, endIdx)
	assert.Less(t, startIdx, endIdx)
}
