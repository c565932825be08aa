package batch_test

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjper/dispatchd/internal/dispatch/batch"
)

func TestReaderNext(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   []string
	}{
		"single item with trailing separator": {
			input: "echo hi\n#####--END\n",
			exp:   []string{"echo hi\n"},
		},
		"final item omits separator": {
			input: "echo one\n#####--END\necho two\n",
			exp:   []string{"echo one\n", "echo two\n"},
		},
		"leading and back to back separators are skipped": {
			input: "#####--END\necho one\n#####--END\n#####--END\necho two\n#####--END\n",
			exp:   []string{"echo one\n", "echo two\n"},
		},
		"empty batch yields nothing": {
			input: "",
			exp:   nil,
		},
		"multi-line item": {
			input: "echo one\necho two\necho three\n#####--END\n",
			exp:   []string{"echo one\necho two\necho three\n"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			r := batch.NewReader(strings.NewReader(test.input), 64, batch.DefaultMaxLineSize)

			var items []string
			for {
				item, err := r.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
				items = append(items, string(item))
			}

			assert.Equal(t, test.exp, items)
		})
	}
}

func TestReaderGrowsAcrossInitialBufferSize(t *testing.T) {
	line := strings.Repeat("a", 200)
	input := line + "\n#####--END\n"

	r := batch.NewReader(strings.NewReader(input), 16, batch.DefaultMaxLineSize)
	item, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, line+"\n", string(item))
}

func TestReaderLineTooLong(t *testing.T) {
	line := strings.Repeat("a", 100)
	input := line + "\n#####--END\n"

	r := batch.NewReader(strings.NewReader(input), 8, 10)
	_, err := r.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, bufio.ErrTooLong))
}
