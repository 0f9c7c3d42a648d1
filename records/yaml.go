package records

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// YAMLStream reads "---" separated YAML documents, one
// record per document. Empty documents are skipped.
type YAMLStream struct {
	R io.Reader
}

// Read implements Source.
func (ys YAMLStream) Read(ctx context.Context) ([]Record, error) {
	const errCtx = "reading yaml stream"

	decoder := yaml.NewDecoder(ys.R)

	var recs []Record

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		var doc map[string]interface{}

		err := decoder.Decode(&doc)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf(
				"%s: decoding yaml: %w",
				errCtx, err,
			)
		}

		if doc == nil {
			continue
		}

		rec, err := toRecord(doc)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: document %d: %w",
				errCtx, len(recs)+1, err,
			)
		}

		recs = append(recs, rec)
	}

	return recs, nil
}
