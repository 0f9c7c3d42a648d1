package tokenlist

import (
	"fmt"
	"io"
	"strings"
)

// SegmentKind tells literal text from a token reference.
type SegmentKind uint8

const (
	// SegmentLiteral holds verbatim template text.
	SegmentLiteral SegmentKind = iota

	// SegmentToken refers to a token resolved at render time.
	SegmentToken
)

// Segment is one unit of a compiled Template. Text is the
// literal text or the token string depending on Kind.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Literal returns a literal segment.
func Literal(text string) Segment {
	return Segment{Kind: SegmentLiteral, Text: text}
}

// TokenRef returns a token segment.
func TokenRef(token string) Segment {
	return Segment{Kind: SegmentToken, Text: token}
}

// Template is a compiled segment layout. It never changes
// after Compile and may be rendered concurrently.
type Template struct {
	segs       []Segment
	tokens     []string
	literalLen int
	missing    MissingAction
}

func newTemplate(
	segs []Segment,
	missing MissingAction,
) *Template {
	tp := &Template{
		segs:    segs,
		missing: missing,
	}

	seen := make(map[string]struct{})

	for _, sg := range segs {
		if sg.Kind == SegmentLiteral {
			tp.literalLen += len(sg.Text)

			continue
		}

		if _, ok := seen[sg.Text]; !ok {
			seen[sg.Text] = struct{}{}
			tp.tokens = append(tp.tokens, sg.Text)
		}
	}

	return tp
}

// Render substitutes values into the segment layout. How a
// token absent from values is handled depends on the
// Parser's MissingAction.
func (tp *Template) Render(
	values map[string]string,
) (string, error) {
	var sb strings.Builder

	sb.Grow(tp.literalLen + 16*len(tp.segs))

	for _, sg := range tp.segs {
		val, err := tp.resolve(sg, values)
		if err != nil {
			return "", err
		}

		sb.WriteString(val)
	}

	return sb.String(), nil
}

// RenderTo writes the rendered output to w. On a missing
// value nothing past the failing segment is written.
func (tp *Template) RenderTo(
	w io.Writer,
	values map[string]string,
) error {
	for _, sg := range tp.segs {
		val, err := tp.resolve(sg, values)
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, val); err != nil {
			return fmt.Errorf("writing segment: %w", err)
		}
	}

	return nil
}

func (tp *Template) resolve(
	sg Segment,
	values map[string]string,
) (string, error) {
	if sg.Kind == SegmentLiteral {
		return sg.Text, nil
	}

	val, ok := values[sg.Text]
	if ok {
		return val, nil
	}

	switch tp.missing {
	case MissingEmpty:
		return "", nil
	case MissingKeep:
		return sg.Text, nil
	default:
		return "", &MissingTokenValueError{Token: sg.Text}
	}
}

// Tokens returns the distinct tokens the template refers
// to, in order of first use.
func (tp *Template) Tokens() []string {
	out := make([]string, len(tp.tokens))
	copy(out, tp.tokens)

	return out
}

// Segments returns a copy of the segment layout.
func (tp *Template) Segments() []Segment {
	out := make([]Segment, len(tp.segs))
	copy(out, tp.segs)

	return out
}

// Source rebuilds the template text the Template was
// compiled from.
func (tp *Template) Source() string {
	var sb strings.Builder

	for _, sg := range tp.segs {
		sb.WriteString(sg.Text)
	}

	return sb.String()
}
