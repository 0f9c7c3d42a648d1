package records

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
)

// Supported record formats.
const (
	FormatJSONLines = "jsonl"
	FormatYAML      = "yaml"
	FormatSQLite    = "sqlite"
)

// Spec selects and locates a record source. Path "-" or
// "" reads stdin for the stream formats; Query is used by
// the sqlite format only.
type Spec struct {
	Format string `yaml:"format" mapstructure:"format"`
	Path   string `yaml:"path" mapstructure:"path"`
	Query  string `yaml:"query" mapstructure:"query"`
}

// Open returns the Source described by spec and a closer
// releasing its file or database handle. The closer is
// never nil.
func Open(
	ctx context.Context,
	spec Spec,
) (Source, func() error, error) {
	const errCtx = "opening records"

	switch strings.ToLower(spec.Format) {
	case FormatJSONLines, "json", "ndjson":
		rd, closer, err := openStream(spec.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return JSONLines{R: rd}, closer, nil

	case FormatYAML, "yml":
		rd, closer, err := openStream(spec.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return YAMLStream{R: rd}, closer, nil

	case FormatSQLite:
		if spec.Query == "" {
			return nil, nil, fmt.Errorf(
				"%s: sqlite source needs a query", errCtx,
			)
		}

		db, err := sql.Open(DriverName, spec.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close() //nolint:errcheck // best-effort close

			return nil, nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return SQL{DB: db, Query: spec.Query}, db.Close, nil

	default:
		return nil, nil, fmt.Errorf(
			"%s: unknown format %q", errCtx, spec.Format,
		)
	}
}

func openStream(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}

	fi, err := os.Open(path) //nolint:gosec // path from config
	if err != nil {
		return nil, nil, err
	}

	return fi, fi.Close, nil
}
