package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dpe-reader/internal/extract"
	"github.com/pdiddy/dpe-reader/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [sources...]",
	Short: "Parse DPE XML documents into normalized records",
	Long: `Parse reads each source (a file path, "-" for standard input, or an
http:// or https:// URL), extracts its normalized record and writes it to
standard output as JSON, YAML or a text summary.

A document that cannot be read is written as {"error": "..."} in place of
its record and the command exits with a non-zero status once every source
has been processed. Progress lines go to standard error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringP("format", "f", "json", "output format: json, yaml, or text")
	parseCmd.Flags().Int64("max-bytes", 0, "reject documents larger than this many bytes (default 10 MiB)")
	parseCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	parseCmd.Flags().Int("max-retries", 0, "retries on HTTP 429 and 503 (default 5)")

	viper.BindPFlag("output.format", parseCmd.Flags().Lookup("format"))
	viper.BindPFlag("source.max_document_bytes", parseCmd.Flags().Lookup("max-bytes"))
	viper.BindPFlag("source.timeout", parseCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("source.max_retries", parseCmd.Flags().Lookup("max-retries"))

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := readerConfig()
	if !cfg.Output.Format.Valid() {
		return fmt.Errorf("unsupported format %q: use json, yaml, or text", cfg.Output.Format)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader := source.New(cfg.Source, nil, logger)
	out, err := newWriter(cmd.OutOrStdout(), cfg.Output.Format)
	if err != nil {
		return err
	}

	summary, err := extract.ParseAll(ctx, loader.Load, args, out.Emit, cmd.ErrOrStderr())
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	logger.Debug("parse finished", "parsed", summary.Parsed, "failed", summary.Failed)
	if summary.HasFailures() {
		return fmt.Errorf("%d of %d document(s) failed", summary.Failed, summary.Total())
	}
	return nil
}
