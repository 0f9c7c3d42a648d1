package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/tokenrender/config"
	"github.com/byte4ever/tokenrender/logging"
	"github.com/byte4ever/tokenrender/tokenlist"
)

func writeConfig(tb testing.TB, content string) string {
	tb.Helper()

	pa := filepath.Join(tb.TempDir(), "tokenrender.yaml")
	require.NoError(tb, os.WriteFile(pa, []byte(content), 0o600))

	return pa
}

const sampleConfig = `template: letter.txt
tokens: ["quick"]
fields: [FirstName, LastName]
start_tag: "<%"
end_tag: "%>"
missing: keep
source:
  format: sqlite
  path: people.db
  query: SELECT * FROM people
parallelism: 8
log:
  level: debug
  format: json
`

func TestLoad_defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("", nil)

	require.NoError(t, err)
	assert.Equal(t, "{{", cfg.StartTag)
	assert.Equal(t, "}}", cfg.EndTag)
	assert.Equal(t, "error", cfg.Missing)
	assert.Equal(t, "jsonl", cfg.Source.Format)
	assert.Equal(t, "\n", cfg.Separator)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, slog.LevelInfo, cfg.Logging().Level)
}

func TestLoad_file(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, sampleConfig), nil)

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "letter.txt", cfg.Template)
	assert.Equal(
		t,
		[]string{"quick", "<%FirstName%>", "<%LastName%>"},
		cfg.Vocabulary(),
	)
	assert.Equal(t, "sqlite", cfg.Source.Format)
	assert.Equal(t, "SELECT * FROM people", cfg.Source.Query)
	assert.Equal(t, 8, cfg.Parallelism)

	action, err := cfg.MissingAction()
	require.NoError(t, err)
	assert.Equal(t, tokenlist.MissingKeep, action)

	assert.Equal(
		t,
		logging.Config{
			Level:  slog.LevelDebug,
			Format: logging.FormatJSON,
		},
		cfg.Logging(),
	)
}

func TestLoad_flags_override_file(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("parallelism", 1, "")
	fs.String("output", "", "")
	fs.String("source", "", "")

	require.NoError(t, fs.Parse([]string{
		"--parallelism=2",
		"--source=other.db",
	}))

	cfg, err := config.Load(writeConfig(t, sampleConfig), fs)

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Parallelism)
	assert.Equal(t, "other.db", cfg.Source.Path)
	// Unset flags keep the file value.
	assert.Equal(t, "letter.txt", cfg.Template)
}

func TestLoad_missing_file(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/tokenrender.yaml", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestValidate_reports_all_problems(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		Parallelism: -1,
		Missing:     "drop",
	}

	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "template is required")
	assert.Contains(t, err.Error(), "at least one token or field")
	assert.Contains(t, err.Error(), "parallelism must not be negative")
	assert.Contains(t, err.Error(), `unknown missing action "drop"`)
}
