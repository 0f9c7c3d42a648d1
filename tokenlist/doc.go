// Package tokenlist compiles a template string containing a fixed set of
// literal tokens into a reusable Template. A Parser is built once from the
// token vocabulary; Compile scans a template for every token, rejects
// overlapping occurrences and splits the text into literal and token
// segments. Template.Render then substitutes values along that precomputed
// layout without scanning the template again.
//
// Parser and Template are immutable and safe for concurrent use.
package tokenlist
