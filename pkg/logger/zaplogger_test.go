package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(Options{AppName: "test-app", AppEnv: "test", Level: "info"}, &buf)

	l.Info("forecast stored", map[string]any{"location": 3, "period": "hour"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "forecast stored", entry["msg"])
	assert.Equal(t, "test-app", entry["app_name"])
	assert.Equal(t, "test", entry["app_zone"])
	assert.EqualValues(t, 3, entry["location"])
	assert.Equal(t, "hour", entry["period"])
	assert.True(t, strings.HasSuffix(entry["caller_file"].(string), "zaplogger_test.go"), entry["caller_file"])
	assert.Contains(t, entry["caller_func"], "TestLogger_Info")
	assert.NotEmpty(t, entry["timestamp"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(Options{AppName: "test-app", Level: "warn"}, &buf)

	l.Debug("debug")
	l.Info("info")
	l.Warning("warning")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(Options{AppName: "test-app"}, &buf)

	l.Error(errors.New("upstream rate limited"), map[string]any{"location": 1})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "upstream rate limited", entry["msg"])
	assert.Equal(t, "upstream rate limited", entry["error"])
	assert.NotEmpty(t, entry["stack"])
	assert.True(t, strings.HasSuffix(entry["caller_file"].(string), "zaplogger_test.go"))
}

func TestLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	l := NewZapLogger(Options{AppName: "test-app", Level: "debug"}, &buf)

	l.Printf("slow query %s took %dms", "SELECT 1", 250)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "slow query SELECT 1 took 250ms", lines[0]["msg"])
	assert.Equal(t, "gorm", lines[0]["component"])
}

func TestLogger_MultipleWriters(t *testing.T) {
	var a, b bytes.Buffer
	l := NewZapLogger(Options{AppName: "test-app"}, &a, &b)

	l.Info("hello")

	assert.Equal(t, a.String(), b.String())
	assert.Contains(t, a.String(), `"msg":"hello"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("").String())
	assert.Equal(t, "error", parseLevel("error").String())
	assert.Equal(t, "info", parseLevel("loud").String())
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Info("ignored")
		l.Error(errors.New("ignored"))
	})
}
