package fsio

import "io"

// SwapStdioForTest replaces stdin and stdout and returns a
// function restoring them. Tests using it must not run in
// parallel.
func SwapStdioForTest(in io.Reader, out io.Writer) func() {
	oldIn, oldOut := stdin, stdout
	stdin, stdout = in, out

	return func() {
		stdin, stdout = oldIn, oldOut
	}
}
