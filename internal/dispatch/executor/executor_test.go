package executor_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjper/dispatchd/internal/dispatch/executor"
)

func TestRunExitStatus(t *testing.T) {
	tests := map[string]struct {
		script string
		exp    int
	}{
		"success":  {script: "exit 0", exp: 0},
		"failure":  {script: "exit 7", exp: 7},
		"true cmd": {script: "true", exp: 0},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			code, err := executor.Run(context.Background(), []byte(test.script), executor.Identity{Rank: 1, Size: 2})
			require.NoError(t, err)
			assert.Equal(t, test.exp, code)
		})
	}
}

func TestRunExposesIdentity(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	script := fmt.Sprintf("echo $WORKER_RANK $WORKER_SIZE > %s", out)

	_, err := executor.Run(context.Background(), []byte(script), executor.Identity{Rank: 2, Size: 3})
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "2 3\n", string(b))
}

func TestRunHook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prolog.sh")
	require.NoError(t, os.WriteFile(path, []byte("exit 3"), 0o755))

	code, err := executor.RunHook(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, code)
}
