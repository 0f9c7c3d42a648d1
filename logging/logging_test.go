package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/tokenrender/logging"
)

func TestNew_json_format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	lg := logging.New(logging.Config{
		Level:  slog.LevelInfo,
		Format: logging.FormatJSON,
		Output: &buf,
	})

	lg.Debug("hidden")
	lg.Info("rendered", "count", 3)

	var entry map[string]interface{}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rendered", entry["msg"])
	assert.InDelta(t, 3, entry["count"], 0)
}

func TestNew_text_format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	lg := logging.New(logging.Config{
		Level:  slog.LevelDebug,
		Output: &buf,
	})

	lg.Debug("compiled", "segments", 4)

	assert.Contains(t, buf.String(), "msg=compiled")
	assert.Contains(t, buf.String(), "segments=4")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}

	for in, want := range cases {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, logging.FormatJSON, logging.ParseFormat("JSON"))
	assert.Equal(t, logging.FormatText, logging.ParseFormat("text"))
	assert.Equal(t, logging.FormatText, logging.ParseFormat(""))
}

func TestNop_discards(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		logging.Nop().Error("ignored")
	})
}
