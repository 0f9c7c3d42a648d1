package records

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

const maxLineSize = 4 << 20

// JSONLines reads one JSON object per line. Blank lines
// are skipped. Numbers keep their literal text, so large
// integers are not turned into floats.
type JSONLines struct {
	R io.Reader
}

// Read implements Source.
func (jl JSONLines) Read(ctx context.Context) ([]Record, error) {
	const errCtx = "reading json lines"

	sc := bufio.NewScanner(jl.R)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	var (
		recs []Record
		line int
	)

	for sc.Scan() {
		line++

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		var doc map[string]interface{}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()

		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf(
				"%s: line %d: %w", errCtx, line, err,
			)
		}

		rec, err := toRecord(doc)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: line %d: %w", errCtx, line, err,
			)
		}

		recs = append(recs, rec)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return recs, nil
}
