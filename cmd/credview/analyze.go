package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/credibility-report/internal/analysis"
	"github.com/jonathan/credibility-report/internal/export"
	"github.com/jonathan/credibility-report/internal/observability"
	"github.com/jonathan/credibility-report/internal/report"
	"github.com/jonathan/credibility-report/internal/types"
)

type analyzeOptions struct {
	url     string
	text    string
	file    string
	purpose string
	out     string
}

func newAnalyzeCmd(a *app) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Submit an article to the analysis service",
		Long:  "Submits an article by URL, pasted text or document upload and writes the report JSON.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client := analysis.NewClient(a.cfg.Analysis.BaseURL, &http.Client{Timeout: a.cfg.Analysis.Timeout})
			return runAnalyze(cmd, client, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "Article URL")
	cmd.Flags().StringVar(&opts.text, "text", "", "Article text")
	cmd.Flags().StringVar(&opts.file, "file", "", "Path to an article document")
	cmd.Flags().StringVarP(&opts.purpose, "purpose", "p", "", "What the article will be used for (enables the usefulness check)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to write the report JSON (default stdout)")
	cmd.MarkFlagsOneRequired("url", "text", "file")
	cmd.MarkFlagsMutuallyExclusive("url", "text", "file")
	return cmd
}

func runAnalyze(cmd *cobra.Command, client *analysis.Client, opts *analyzeOptions) error {
	ctx := cmd.Context()

	var (
		raw []byte
		err error
	)
	switch {
	case opts.url != "":
		req := types.AnalyzeURLRequest{URL: opts.url, Purpose: opts.purpose}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("invalid url: %w", err)
		}
		raw, err = client.SubmitURL(ctx, req.URL, req.Purpose)
	case opts.text != "":
		req := types.AnalyzeTextRequest{Text: opts.text, Purpose: opts.purpose}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("text input is too short, provide at least %d characters", types.MinTextLength)
		}
		raw, err = client.SubmitText(ctx, req.Text, req.Purpose)
	default:
		f, openErr := os.Open(opts.file)
		if openErr != nil {
			return fmt.Errorf("failed to open document: %w", openErr)
		}
		defer func() { _ = f.Close() }()

		info, statErr := f.Stat()
		if statErr != nil {
			return fmt.Errorf("failed to stat document: %w", statErr)
		}
		req := types.AnalyzeFileRequest{Filename: info.Name(), Size: info.Size(), Purpose: opts.purpose}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("document %s is empty", opts.file)
		}
		raw, err = client.SubmitFile(ctx, req.Filename, f, req.Purpose)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	r, err := report.Parse(raw)
	if err != nil {
		return fmt.Errorf("analysis service returned an unusable report: %w", err)
	}
	pretty, err := export.JSON(r)
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err = cmd.OutOrStdout().Write(pretty)
		return err
	}
	if err := os.WriteFile(opts.out, pretty, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	observability.Log.WithField("path", opts.out).Info("report written")
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", opts.out)
	return nil
}
