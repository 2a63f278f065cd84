package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/credibility-report/internal/export"
)

type exportOptions struct {
	report string
	format string
	dir    string
}

func newExportCmd(a *app) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a report as JSON, text or PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine := export.NewEngine(export.NewLoader(export.FontLoader(nil, a.cfg.Document.FontURL)))
			return runExport(cmd, engine, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.report, "report", "r", "", "Path to report JSON (required)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(export.FormatPDF), "Export format: json, txt or pdf")
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "Directory to write the export to")
	markRequired(cmd, "report")
	return cmd
}

func runExport(cmd *cobra.Command, engine *export.Engine, opts *exportOptions) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	r, err := readReport(opts.report)
	if err != nil {
		return err
	}

	artifact, err := engine.Export(cmd.Context(), r, format)
	notice := export.NoticeFor(artifact, err)
	if err != nil {
		return fmt.Errorf("%s: %w", notice.Message, err)
	}

	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(opts.dir, artifact.Filename)
	if err := os.WriteFile(path, artifact.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), notice.Message)
	return nil
}
