// Package values builds token value mappings. LoadFiles parses workspace
// status style "KEY VALUE" files; ParseAssignments turns NAME=VALUE pairs
// into values, expanding single-brace {KEY} references against loaded
// stamps. Tags wraps field names into delimited tokens such as
// "{{FirstName}}" and keys records by those tokens.
package values
