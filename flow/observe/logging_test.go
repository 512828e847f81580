package observe_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguimbarda/pullflow/flow"
	"github.com/lguimbarda/pullflow/flow/observe"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var entry map[string]any
		require.NoError(t, dec.Decode(&entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogging(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.TraceLevel)

	n, err := flow.Of(10, 20).Observe(observe.Logging[int](logger, "numbers")).Count()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 4)

	assert.Equal(t, "debug", entries[0]["level"])
	assert.Equal(t, "stream started", entries[0]["message"])

	assert.Equal(t, "trace", entries[1]["level"])
	assert.Equal(t, float64(10), entries[1]["value"])
	assert.Equal(t, float64(0), entries[1]["index"])

	done := entries[3]
	assert.Equal(t, "info", done["level"])
	assert.Equal(t, "stream completed", done["message"])
	assert.Equal(t, float64(2), done["elements"])
	assert.Equal(t, "numbers", done["stage"])
}

func TestLogging_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	_, err := flow.Range(0, 100).Observe(observe.Logging[int](logger, "quiet")).Count()
	require.NoError(t, err)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "stream completed", entries[0]["message"])
}

func TestLogging_Failure(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.ErrorLevel)

	failing := flow.TryMap(flow.Of("1"), func(string) (int, error) {
		return 0, errors.New("bad input")
	})
	_, err := failing.Observe(observe.Logging[int](logger, "parse")).Count()
	require.Error(t, err)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0]["level"])
	assert.Equal(t, "bad input", entries[0]["error"])
	assert.Equal(t, float64(0), entries[0]["elements"])
}
