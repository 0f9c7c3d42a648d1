package records

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// Record maps field names to values.
type Record map[string]string

// Source yields all records of one input.
type Source interface {
	Read(ctx context.Context) ([]Record, error)
}

// toRecord flattens a decoded document into a Record.
// JSON numbers keep their literal text, other scalars are
// formatted with fmt.Sprint, nil becomes the empty string
// and nested values are rejected.
func toRecord(doc map[string]interface{}) (Record, error) {
	rec := make(Record, len(doc))

	for key, raw := range doc {
		switch val := raw.(type) {
		case nil:
			rec[key] = ""
		case string:
			rec[key] = val
		case json.Number:
			rec[key] = val.String()
		case map[string]interface{}, []interface{}:
			return nil, fmt.Errorf(
				"field %q: nested values are not supported",
				key,
			)
		default:
			rec[key] = fmt.Sprint(val)
		}
	}

	return rec, nil
}
