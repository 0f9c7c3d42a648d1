// Package fsio resolves the input and output paths taken by the tokenrender
// binaries. An empty path means stdin for reads and stdout for writes.
package fsio
