// Binary tokenrender-batch renders one template against
// every record of a JSON lines, YAML or SQLite source.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/byte4ever/tokenrender/batch"
	"github.com/byte4ever/tokenrender/config"
	"github.com/byte4ever/tokenrender/fsio"
	"github.com/byte4ever/tokenrender/logging"
	"github.com/byte4ever/tokenrender/records"
	"github.com/byte4ever/tokenrender/tokenlist"
)

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "tokenrender-batch",
		Short: "Render a template for every record of a source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath, cmd.Flags())
			if err != nil {
				return err
			}

			return run(cmd.Context(), cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fl := cmd.Flags()

	fl.StringVar(
		&cfgPath, "config", "",
		"YAML config file",
	)
	fl.String("template", "", "template file path")
	fl.StringArray("token", nil, "literal token (repeatable)")
	fl.StringArray("field", nil, "record field name (repeatable)")
	fl.String("start-tag", "{{", "start tag wrapping field names")
	fl.String("end-tag", "}}", "end tag wrapping field names")
	fl.String("missing", "error", "missing value policy: error, empty or keep")
	fl.String("source", "", "record source path (stdin if empty)")
	fl.String("format", records.FormatJSONLines, "record format: jsonl, yaml or sqlite")
	fl.String("query", "", "SQL query for the sqlite format")
	fl.String("output", "", "output file path (stdout if empty)")
	fl.String("separator", "\n", "separator written between outputs")
	fl.Int("parallelism", 4, "number of concurrent render workers")
	fl.String("log-level", "info", "log level")
	fl.String("log-format", "text", "log format: text or json")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) (retErr error) {
	const errCtx = "tokenrender-batch"

	if err := cfg.Validate(); err != nil {
		return err
	}

	lg := logging.New(cfg.Logging())

	action, err := cfg.MissingAction()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	content, err := fsio.ReadInput(cfg.Template)
	if err != nil {
		return fmt.Errorf("%s: template: %w", errCtx, err)
	}

	pa, err := tokenlist.NewParser(
		cfg.Vocabulary(),
		tokenlist.WithMissingAction(action),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tp, err := pa.Compile(string(content))
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	lg.Debug(
		"template compiled",
		"path", cfg.Template,
		"segments", len(tp.Segments()),
		"tokens", tp.Tokens(),
	)

	src, closeSrc, err := records.Open(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer closeSrc() //nolint:errcheck // best-effort close

	out, err := fsio.OpenOutput(cfg.Output, fsio.ModeFile)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	if _, err := batch.Run(ctx, batch.Config{
		Template:    tp,
		Source:      src,
		Tags:        cfg.Tags(),
		Out:         out,
		Separator:   cfg.Separator,
		Parallelism: cfg.Parallelism,
		Logger:      lg,
	}); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
