package formatter

import (
	"io"
	"testing"

	tt "github.com/gnolang/depwarn/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestFormatDeprecation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		event    tt.DeprecationEvent
		expected string
	}{
		{
			name:     "method only",
			event:    tt.DeprecationEvent{Method: "std.GetHeight"},
			expected: "std.GetHeight is deprecated.",
		},
		{
			name:     "method and alternate",
			event:    tt.DeprecationEvent{Method: "std.GetHeight", AlternateMethod: "std.ChainHeight"},
			expected: "std.GetHeight is deprecated. Use std.ChainHeight instead.",
		},
		{
			name:     "alternate and call site",
			event:    tt.DeprecationEvent{AlternateMethod: "b", CalledFrom: "main.gno:3:2"},
			expected: "Use b instead. Called from main.gno:3:2.",
		},
		{
			name: "all fields keep fixed order",
			event: tt.DeprecationEvent{
				CalledFrom:      "z",
				AlternateMethod: "y",
				Method:          "x",
			},
			expected: "x is deprecated. Use y instead. Called from z.",
		},
		{
			name:     "message wins",
			event:    tt.DeprecationEvent{Message: "M", Method: "x"},
			expected: "M",
		},
		{
			name:     "empty event",
			event:    tt.DeprecationEvent{},
			expected: "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, FormatDeprecation(tc.event))
		})
	}
}

func TestMessagePartsOrder(t *testing.T) {
	t.Parallel()
	ev := tt.DeprecationEvent{Method: "m", AlternateMethod: "a", CalledFrom: "c"}

	var rendered []string
	for _, p := range messageParts {
		assert.True(t, p.present(ev))
		rendered = append(rendered, p.render(ev))
	}

	assert.Equal(t, []string{"m is deprecated.", "Use a instead.", "Called from c."}, rendered)
	for _, p := range messageParts {
		assert.False(t, p.present(tt.DeprecationEvent{}))
	}
}

func TestSummaryLine(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1 deprecation logged to /tmp/foo", summaryLine(1, "/tmp/foo"))
	assert.Equal(t, "2 deprecations logged to /tmp/foo", summaryLine(2, "/tmp/foo"))
	assert.Equal(t, "10 deprecations logged to log.txt", summaryLine(10, "log.txt"))
}

func TestDestination(t *testing.T) {
	t.Parallel()
	file := FilePath("deprecations.log")
	assert.Equal(t, KindFilePath, file.Kind())
	assert.Equal(t, "deprecations.log", file.Path())
	assert.Contains(t, file.ResolvedPath(), "deprecations.log")
	assert.Equal(t, "file", file.Kind().String())

	stream := OpenStream(io.Discard)
	assert.Equal(t, KindStream, stream.Kind())
	assert.Empty(t, stream.Path())
	assert.Empty(t, stream.ResolvedPath())
	assert.Equal(t, "stream", stream.String())

	var zero Destination
	assert.Equal(t, KindInvalid, zero.Kind())
	assert.Equal(t, "invalid", zero.String())
	assert.Empty(t, zero.ResolvedPath())
}
