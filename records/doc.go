// Package records reads per-record value sets for batch rendering. A Source
// yields Records (field name to string value) from JSON lines, a multi-document
// YAML stream or an SQLite query. Open picks a Source from a Spec.
package records
