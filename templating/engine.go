package templating

import (
	"errors"
	"fmt"

	"github.com/byte4ever/tokenrender/fsio"
	"github.com/byte4ever/tokenrender/tokenlist"
	"github.com/byte4ever/tokenrender/values"
)

// Engine expands templates using stamp info files and
// explicit variables.
type Engine struct {
	StartTag       string
	EndTag         string
	StampInfoFiles []string
}

// Expand renders the template at tplPath (stdin if empty)
// into outPath (stdout if empty). executable creates the
// output with mode 0777 instead of 0666.
//
// Names come from three places, later ones overriding
// earlier ones:
//  1. stamp info files, as "KEY";
//  2. vars NAME=VALUE, as "NAME" and "variables.NAME",
//     with {KEY} stamp references expanded in VALUE;
//  3. imports NAME=file, as "imports.NAME": the file is
//     expanded against the names known so far, then its
//     {KEY} stamp references are expanded.
//
// Every name wrapped in the start/end tags is a token. A
// template holding none of them is copied unchanged.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars []string,
	imports []string,
	executable bool,
) (retErr error) {
	const errCtx = "expanding template"

	names, err := en.Names(vars, imports)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	src, err := fsio.ReadInput(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tp, err := en.compile(string(src), names)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	perm := fsio.ModeFile
	if executable {
		perm = fsio.ModeExecutable
	}

	out, err := fsio.OpenOutput(outPath, perm)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	if tp == nil {
		_, err = out.Write(src)
	} else {
		err = tp.RenderTo(out, en.tags().Keyed(names))
	}

	if err != nil {
		return fmt.Errorf("%s: writing output: %w", errCtx, err)
	}

	return nil
}

// Names resolves stamps, vars and imports into the name
// to value mapping Expand renders with.
func (en *Engine) Names(
	vars []string,
	imports []string,
) (map[string]string, error) {
	stamps, err := values.LoadFiles(en.StampInfoFiles)
	if err != nil {
		return nil, err
	}

	resolved, err := values.ParseAssignments(vars, stamps)
	if err != nil {
		return nil, err
	}

	names := values.Merge(stamps, resolved)
	for name, val := range resolved {
		names["variables."+name] = val
	}

	for _, im := range imports {
		name, path, ok := values.SplitPair(im)
		if !ok || path == "" {
			return nil, fmt.Errorf(
				"import must be NAME=filename, got %s", im,
			)
		}

		content, err := fsio.ReadInput(path)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", name, err)
		}

		expanded, err := en.ExpandString(string(content), names)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", name, err)
		}

		names["imports."+name] = values.ExpandStamps(expanded, stamps)
	}

	return names, nil
}

// ExpandString expands src against names with the
// configured tags. Unknown placeholders are preserved.
func (en *Engine) ExpandString(
	src string,
	names map[string]string,
) (string, error) {
	const errCtx = "expanding string"

	tp, err := en.compile(src, names)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	if tp == nil {
		return src, nil
	}

	out, err := tp.Render(en.tags().Keyed(names))
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	return out, nil
}

// compile builds a Template whose vocabulary is every name
// wrapped in the configured tags. It returns a nil
// Template when src holds none of them.
func (en *Engine) compile(
	src string,
	names map[string]string,
) (*tokenlist.Template, error) {
	if len(names) == 0 {
		return nil, nil
	}

	pa, err := tokenlist.NewParser(
		en.tags().Vocabulary(values.Names(names)),
		tokenlist.WithMissingAction(tokenlist.MissingKeep),
	)
	if err != nil {
		return nil, err
	}

	tp, err := pa.Compile(src)
	if errors.Is(err, tokenlist.ErrNoTokensFound) {
		return nil, nil
	}

	return tp, err
}

func (en *Engine) tags() values.Tags {
	return values.Tags{Start: en.StartTag, End: en.EndTag}
}
