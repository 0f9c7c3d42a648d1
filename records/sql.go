package records

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver used by Open for
// the sqlite format.
const DriverName = "sqlite"

// SQL runs Query and yields one record per row keyed by
// column name. NULL columns become empty strings.
type SQL struct {
	DB    *sql.DB
	Query string
}

// Read implements Source.
func (sq SQL) Read(ctx context.Context) (result []Record, retErr error) {
	const errCtx = "reading sql rows"

	rows, err := sq.DB.QueryContext(ctx, sq.Query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var recs []Record

	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		ptrs := make([]interface{}, len(cols))

		for idx := range cells {
			ptrs[idx] = &cells[idx]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		rec := make(Record, len(cols))
		for idx, col := range cols {
			rec[col] = cells[idx].String
		}

		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return recs, nil
}
