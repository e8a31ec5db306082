package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batch = `{
	"base_requests": [
		{"type": "Stop", "name": "S1", "latitude": 0, "longitude": 0, "road_distances": {"S2": 1000}},
		{"type": "Stop", "name": "S2", "latitude": 0, "longitude": 1, "road_distances": {"S3": 1000}},
		{"type": "Stop", "name": "S3", "latitude": 0, "longitude": 2},
		{"type": "Bus", "name": "B1", "stops": ["S1", "S2", "S3"], "is_roundtrip": false}
	],
	"routing_settings": {"bus_wait_time": 5, "bus_velocity": 30},
	"stat_requests": [
		{"id": 1, "type": "Route", "from": "S1", "to": "S3"},
		{"id": 2, "type": "Stop", "name": "Nowhere"}
	]
}`

func run(t *testing.T, stdin string, args ...string) (stdout, logs string, err error) {
	t.Helper()

	var out, logBuf bytes.Buffer
	cliApp := newCLI(&logBuf)
	cliApp.Reader = strings.NewReader(stdin)
	cliApp.Writer = &out
	cliApp.ErrWriter = &logBuf

	err = cliApp.Run(append([]string{"tcat"}, args...))
	return out.String(), logBuf.String(), err
}

func decodeResponses(t *testing.T, data string) []map[string]interface{} {
	t.Helper()

	var responses []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(data), &responses))
	return responses
}

func TestProcessCommand(t *testing.T) {
	t.Run("stdin to stdout", func(t *testing.T) {
		stdout, logs, err := run(t, batch, "process")
		require.NoError(t, err)

		responses := decodeResponses(t, stdout)
		require.Len(t, responses, 2)
		assert.InDelta(t, 9.0, responses[0]["total_time"], 1e-6)
		assert.Equal(t, "not found", responses[1]["error_message"])

		assert.Contains(t, logs, `"msg":"request_batch_processed"`)
		assert.NotContains(t, stdout, "request_batch_processed")
	})

	t.Run("files", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "in.json")
		output := filepath.Join(dir, "out.json")
		require.NoError(t, os.WriteFile(input, []byte(batch), 0o600))

		stdout, _, err := run(t, "", "process", "--input", input, "--output", output)
		require.NoError(t, err)
		assert.Empty(t, stdout)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Len(t, decodeResponses(t, string(data)), 2)
	})

	t.Run("missing input file", func(t *testing.T) {
		_, _, err := run(t, "", "process", "--input", filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})

	t.Run("invalid batch", func(t *testing.T) {
		_, _, err := run(t, `{"base_requests": [{"type": "Tram"}]}`, "process")
		assert.Error(t, err)
	})
}

func TestGlobalFlags(t *testing.T) {
	t.Run("log level silences info logs", func(t *testing.T) {
		_, logs, err := run(t, batch, "--log-level", "error", "process")
		require.NoError(t, err)
		assert.Empty(t, logs)
	})

	t.Run("config file selects text logs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("log_format: text\nenv: production\n"), 0o600))

		_, logs, err := run(t, batch, "--config", path, "process")
		require.NoError(t, err)
		assert.Contains(t, logs, "msg=request_batch_processed")
		assert.Contains(t, logs, "env=production")
	})

	t.Run("env flag overrides config", func(t *testing.T) {
		_, logs, err := run(t, batch, "--env", "test", "process")
		require.NoError(t, err)
		assert.Contains(t, logs, `"env":"test"`)
	})

	t.Run("bad log level", func(t *testing.T) {
		_, _, err := run(t, batch, "--log-level", "loud", "process")
		assert.Error(t, err)
	})
}

func TestGTFSCommandValidatesRouting(t *testing.T) {
	_, _, err := run(t, `{}`, "gtfs", "--source", "feed.zip", "--velocity", "0")
	assert.Error(t, err)
}
