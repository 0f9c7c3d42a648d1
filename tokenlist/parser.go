package tokenlist

import (
	"fmt"
	"sort"
	"strings"
)

// Occurrence locates one vocabulary token inside a
// template. Start is a byte offset.
type Occurrence struct {
	Start int
	Token string
}

// End returns the offset just past the occurrence.
func (oc Occurrence) End() int {
	return oc.Start + len(oc.Token)
}

// Parser compiles templates against a fixed token
// vocabulary. It holds no mutable state once built.
type Parser struct {
	tokens  []string
	missing MissingAction
}

// NewParser builds a Parser for tokens. Duplicate tokens
// are collapsed, keeping the first position. An empty
// vocabulary or an empty token yields ErrInvalidVocabulary.
func NewParser(
	tokens []string,
	opts ...Option,
) (*Parser, error) {
	const errCtx = "creating parser"

	if len(tokens) == 0 {
		return nil, fmt.Errorf(
			"%s: %w: tokens may not be empty",
			errCtx, ErrInvalidVocabulary,
		)
	}

	seen := make(map[string]struct{}, len(tokens))
	uniq := make([]string, 0, len(tokens))

	for idx, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf(
				"%s: %w: token %d is empty",
				errCtx, ErrInvalidVocabulary, idx,
			)
		}

		if _, dup := seen[tok]; dup {
			continue
		}

		seen[tok] = struct{}{}
		uniq = append(uniq, tok)
	}

	pa := &Parser{tokens: uniq}

	for _, opt := range opts {
		opt(pa)
	}

	return pa, nil
}

// Tokens returns a copy of the deduplicated vocabulary in
// input order.
func (pa *Parser) Tokens() []string {
	out := make([]string, len(pa.tokens))
	copy(out, pa.tokens)

	return out
}

// Compile scans tpl for every vocabulary token and returns
// the segment layout as a Template.
//
// Occurrences are ordered by start offset. Equal offsets
// put the longer token first, then vocabulary order; such
// a tie always ends in ErrTokenOverlap because the shorter
// token is a prefix of the longer one.
func (pa *Parser) Compile(tpl string) (*Template, error) {
	const errCtx = "compiling template"

	occs := pa.scan(tpl)
	if len(occs) == 0 {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, ErrNoTokensFound,
		)
	}

	segs, err := partition(tpl, occs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return newTemplate(segs, pa.missing), nil
}

// scan collects the occurrences of every token, each token
// resuming its search past its own previous match.
func (pa *Parser) scan(tpl string) []Occurrence {
	var occs []Occurrence

	for _, tok := range pa.tokens {
		for pos := 0; pos <= len(tpl)-len(tok); {
			idx := strings.Index(tpl[pos:], tok)
			if idx < 0 {
				break
			}

			occs = append(occs, Occurrence{
				Start: pos + idx,
				Token: tok,
			})
			pos += idx + len(tok)
		}
	}

	sort.SliceStable(occs, func(i, j int) bool {
		if occs[i].Start != occs[j].Start {
			return occs[i].Start < occs[j].Start
		}

		return len(occs[i].Token) > len(occs[j].Token)
	})

	return occs
}

// partition walks sorted occurrences and splits tpl into
// literal and token segments. Empty literals are dropped.
func partition(
	tpl string,
	occs []Occurrence,
) ([]Segment, error) {
	segs := make([]Segment, 0, 2*len(occs)+1)

	pos := 0

	var prev Occurrence

	for _, oc := range occs {
		if oc.Start < pos {
			return nil, &TokenOverlapError{
				First:  prev,
				Second: oc,
			}
		}

		if oc.Start > pos {
			segs = append(segs, Literal(tpl[pos:oc.Start]))
		}

		segs = append(segs, TokenRef(oc.Token))
		pos = oc.End()
		prev = oc
	}

	if pos < len(tpl) {
		segs = append(segs, Literal(tpl[pos:]))
	}

	return segs, nil
}
