package values

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// LoadFiles reads status files and merges them into a
// single map. Each line is "KEY VALUE" with the first
// space as delimiter. Lines without a space are silently
// skipped; later files override earlier ones.
func LoadFiles(
	paths []string,
) (map[string]string, error) {
	const errCtx = "loading value files"

	vals := make(map[string]string)

	for _, pa := range paths {
		content, err := os.ReadFile(pa) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			parts := strings.SplitN(line, " ", 2)
			if len(parts) == 2 {
				vals[parts[0]] = parts[1]
			}
		}
	}

	return vals, nil
}

// SplitPair splits "NAME=VALUE" at the first '='. ok is
// false when there is no '=' or NAME is empty.
func SplitPair(s string) (name string, value string, ok bool) {
	name, value, found := strings.Cut(s, "=")
	if !found || name == "" {
		return "", "", false
	}

	return name, value, true
}

// ExpandStamps substitutes single-brace {KEY} references
// in s from stamps. Unknown references are preserved.
func ExpandStamps(s string, stamps map[string]string) string {
	if len(stamps) == 0 {
		return s
	}

	return fasttemplate.ExecuteStringStd(
		s, "{", "}", stampContext(stamps),
	)
}

func stampContext(stamps map[string]string) map[string]interface{} {
	ctx := make(map[string]interface{}, len(stamps))
	for key, val := range stamps {
		ctx[key] = val
	}

	return ctx
}

// ParseAssignments processes NAME=VALUE pairs. Each VALUE
// is expanded against stamps using single-brace tags;
// unknown references are preserved as-is.
func ParseAssignments(
	vars []string,
	stamps map[string]string,
) (map[string]string, error) {
	const errCtx = "parsing assignments"

	ctx := stampContext(stamps)
	out := make(map[string]string, len(vars))

	for _, vr := range vars {
		name, val, ok := SplitPair(vr)
		if !ok {
			return nil, fmt.Errorf(
				"%s: variable must be NAME=VALUE, got %s",
				errCtx, vr,
			)
		}

		out[name] = fasttemplate.ExecuteStringStd(
			val, "{", "}", ctx,
		)
	}

	return out, nil
}

// Merge returns a new map holding every entry of maps,
// later maps overriding earlier ones.
func Merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)

	for _, mp := range maps {
		for key, val := range mp {
			out[key] = val
		}
	}

	return out
}
