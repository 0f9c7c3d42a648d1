package tokenlist

import "fmt"

// MissingAction specifies how Render handles a token that
// has no entry in the value mapping.
type MissingAction int

const (
	// MissingError fails the render with a
	// MissingTokenValueError. This is the default.
	MissingError MissingAction = iota

	// MissingEmpty substitutes an empty string.
	MissingEmpty

	// MissingKeep writes the token text itself.
	MissingKeep
)

// String returns the lower-case name used in configuration.
func (ma MissingAction) String() string {
	switch ma {
	case MissingEmpty:
		return "empty"
	case MissingKeep:
		return "keep"
	default:
		return "error"
	}
}

// ParseMissingAction maps "error", "empty" or "keep" to
// a MissingAction. The empty string selects MissingError.
func ParseMissingAction(s string) (MissingAction, error) {
	switch s {
	case "", "error":
		return MissingError, nil
	case "empty":
		return MissingEmpty, nil
	case "keep":
		return MissingKeep, nil
	default:
		return MissingError, fmt.Errorf(
			"unknown missing action %q", s,
		)
	}
}

// Option configures a Parser.
type Option func(*Parser)

// WithMissingAction sets the missing value policy of every
// Template compiled by the Parser.
//
// Default: MissingError
func WithMissingAction(action MissingAction) Option {
	return func(pa *Parser) {
		pa.missing = action
	}
}
