// Package templating expands template files from stamp info files, explicit
// NAME=VALUE variables and imported partials.
//
// Every known name, wrapped in the Engine's start and end tags (default "{{"
// and "}}"), becomes a tokenlist token. Placeholders naming nothing known are
// left untouched, and a template with no known placeholder is copied as-is.
// Names whose wrapped forms overlap inside a template make Expand fail with
// tokenlist.ErrTokenOverlap.
package templating
