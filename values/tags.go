package values

import "sort"

// Default placeholder delimiters.
const (
	DefaultStartTag = "{{"
	DefaultEndTag   = "}}"
)

// Tags delimits field names inside a template. The zero
// value falls back to double braces.
type Tags struct {
	Start string
	End   string
}

func (tg Tags) pair() (string, string) {
	start := tg.Start
	if start == "" {
		start = DefaultStartTag
	}

	end := tg.End
	if end == "" {
		end = DefaultEndTag
	}

	return start, end
}

// Wrap returns name enclosed in the start and end tags.
func (tg Tags) Wrap(name string) string {
	start, end := tg.pair()

	return start + name + end
}

// Vocabulary wraps every name, preserving order.
func (tg Tags) Vocabulary(names []string) []string {
	out := make([]string, 0, len(names))

	for _, na := range names {
		out = append(out, tg.Wrap(na))
	}

	return out
}

// Keyed returns a lookup map holding each record entry
// under its raw key and under its wrapped key, so both
// literal tokens and delimited fields resolve. When a raw
// key is literally the wrapped form of another field, the
// wrapped field wins: "{{X}}" always resolves to field X.
func (tg Tags) Keyed(record map[string]string) map[string]string {
	out := make(map[string]string, 2*len(record))

	for key, val := range record {
		out[key] = val
	}

	for key, val := range record {
		out[tg.Wrap(key)] = val
	}

	return out
}

// Names returns the keys of mp in sorted order.
func Names(mp map[string]string) []string {
	out := make([]string, 0, len(mp))

	for key := range mp {
		out = append(out, key)
	}

	sort.Strings(out)

	return out
}
