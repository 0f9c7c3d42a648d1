package tokenlist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVocabulary is returned by NewParser when the token
	// vocabulary is empty or contains an empty token.
	ErrInvalidVocabulary = errors.New("invalid token vocabulary")

	// ErrNoTokensFound is returned by Compile when the template
	// contains none of the vocabulary tokens.
	ErrNoTokensFound = errors.New("no tokens found in template")

	// ErrTokenOverlap is matched by TokenOverlapError.
	ErrTokenOverlap = errors.New(
		"tokens may not overlap each other within the template",
	)

	// ErrMissingTokenValue is matched by MissingTokenValueError.
	ErrMissingTokenValue = errors.New("missing token value")
)

// TokenOverlapError reports two occurrences whose spans
// intersect. First is the occurrence already consumed,
// Second the one starting inside it.
type TokenOverlapError struct {
	First  Occurrence
	Second Occurrence
}

// Error implements the error interface.
func (e *TokenOverlapError) Error() string {
	return fmt.Sprintf(
		"%s: token %q at position %d is overlapping token %q at position %d",
		ErrTokenOverlap,
		e.Second.Token, e.Second.Start,
		e.First.Token, e.First.Start,
	)
}

// Is reports whether target is ErrTokenOverlap.
func (e *TokenOverlapError) Is(target error) bool {
	return target == ErrTokenOverlap
}

// MissingTokenValueError names the token a render could
// not resolve from its value mapping.
type MissingTokenValueError struct {
	Token string
}

// Error implements the error interface.
func (e *MissingTokenValueError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingTokenValue, e.Token)
}

// Is reports whether target is ErrMissingTokenValue.
func (e *MissingTokenValueError) Is(target error) bool {
	return target == ErrMissingTokenValue
}
