// Binary tokenrender-expand expands a template using
// stamp info files and explicit variable substitutions.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/byte4ever/tokenrender/templating"
)

func newRootCmd() *cobra.Command {
	var (
		stampInfoFiles []string
		variables      []string
		imports        []string
		output         string
		tpl            string
		executable     bool
		en             templating.Engine
	)

	cmd := &cobra.Command{
		Use:   "tokenrender-expand",
		Short: "Expand a template from stamps and variables",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			en.StampInfoFiles = stampInfoFiles

			return en.Expand(
				tpl, output, variables, imports, executable,
			)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fl := cmd.Flags()

	fl.StringArrayVar(
		&stampInfoFiles, "stamp_info_file", nil,
		"Stamp info file path (repeatable)",
	)
	fl.StringArrayVar(
		&variables, "variable", nil,
		"Variable in NAME=VALUE format (repeatable)",
	)
	fl.StringArrayVar(
		&imports, "imports", nil,
		"Import in NAME=filename format (repeatable)",
	)
	fl.StringVar(
		&output, "output", "",
		"Output file path (stdout if empty)",
	)
	fl.StringVar(
		&tpl, "template", "",
		"Input template file path (stdin if empty)",
	)
	fl.BoolVar(
		&executable, "executable", false,
		"Set executable bit on output file",
	)
	fl.StringVar(
		&en.StartTag, "start_tag", "{{",
		"Start tag for template placeholders",
	)
	fl.StringVar(
		&en.EndTag, "end_tag", "}}",
		"End tag for template placeholders",
	)

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
