package fsio

import (
	"fmt"
	"io"
	"os"
)

// Output file modes.
const (
	ModeFile       os.FileMode = 0o666
	ModeExecutable os.FileMode = 0o777
)

// stdin and stdout are swapped by tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// ReadInput returns the content of path, or of stdin when
// path is empty.
func ReadInput(path string) ([]byte, error) {
	if path == "" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return content, nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return content, nil
}

// Output is a destination opened by OpenOutput. Close
// must be called once writing is done; it is a no-op for
// stdout.
type Output struct {
	io.Writer

	fi *os.File
}

// Close flushes and closes the underlying file.
func (ou *Output) Close() error {
	if ou.fi == nil {
		return nil
	}

	if err := ou.fi.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	return nil
}

// OpenOutput truncates or creates path with mode perm, or
// returns stdout when path is empty. perm is subject to
// the process umask.
func OpenOutput(path string, perm os.FileMode) (*Output, error) {
	if path == "" {
		return &Output{Writer: stdout}, nil
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		path,
		os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}

	return &Output{Writer: fi, fi: fi}, nil
}
