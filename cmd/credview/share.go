package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/spf13/cobra"

	"github.com/jonathan/credibility-report/internal/export"
)

type shareOptions struct {
	report  string
	kind    string
	pageURL string
	copy    bool
}

func newShareCmd(_ *app) *cobra.Command {
	opts := &shareOptions{}
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Build share text for a report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShare(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.report, "report", "r", "", "Path to report JSON (required)")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", string(export.ShareSummary), "Share kind: summary, email or social")
	cmd.Flags().StringVar(&opts.pageURL, "page-url", "", "Address of the shared results page")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the share text to the terminal clipboard")
	markRequired(cmd, "report")
	return cmd
}

func runShare(cmd *cobra.Command, opts *shareOptions) error {
	kind, err := export.ParseShareKind(opts.kind)
	if err != nil {
		return err
	}
	r, err := readReport(opts.report)
	if err != nil {
		return err
	}

	payload, err := export.Share(r, kind, opts.pageURL)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if payload.Subject != "" {
		fmt.Fprintf(out, "Subject: %s\n\n%s\n\n", payload.Subject, payload.Body)
	}
	if payload.URL != "" && payload.URL != payload.Text {
		fmt.Fprintf(out, "Link: %s\n", payload.URL)
	}
	fmt.Fprintln(out, payload.Text)

	if !opts.copy {
		return nil
	}
	d := export.Deliverer{Clipboard: osc52Clipboard{out: cmd.ErrOrStderr(), tmux: os.Getenv("TMUX") != ""}}
	if _, err := d.Deliver(cmd.Context(), payload); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
	return nil
}

// osc52Clipboard copies through the terminal's OSC 52 escape sequence.
type osc52Clipboard struct {
	out  io.Writer
	tmux bool
}

func (c osc52Clipboard) Copy(_ context.Context, text string) error {
	seq := osc52.New(text)
	if c.tmux {
		seq = seq.Tmux()
	}
	_, err := seq.WriteTo(c.out)
	return err
}
