package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/credibility-report/internal/modal"
	"github.com/jonathan/credibility-report/internal/terminal"
	"github.com/jonathan/credibility-report/internal/types"
	"github.com/jonathan/credibility-report/internal/view"
)

type viewOptions struct {
	report string
	detail string
	width  int
}

func newViewCmd(_ *app) *cobra.Command {
	opts := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render a report in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.report, "report", "r", "", "Path to report JSON (required)")
	cmd.Flags().StringVar(&opts.detail, "detail", "", "Also show the detail panel for a category (evidence, bias, relevancy, citation, author, usefulness)")
	cmd.Flags().IntVar(&opts.width, "width", terminal.DefaultWidth, "Output width in columns")
	markRequired(cmd, "report")
	return cmd
}

func runView(cmd *cobra.Command, opts *viewOptions) error {
	r, err := readReport(opts.report)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := terminal.New(out, opts.width)
	state := view.Project(r)
	if _, err := fmt.Fprint(out, renderer.View(state)); err != nil {
		return err
	}
	if opts.detail == "" {
		return nil
	}

	category, ok := types.ParseCategory(opts.detail)
	if !ok {
		return fmt.Errorf("unknown category %q", opts.detail)
	}
	card, ok := state.Card(category)
	if !ok {
		return fmt.Errorf("report has no %s card", category)
	}

	// A terminal has no animation; run the count-up to completion.
	sched := &modal.ManualScheduler{}
	controller := modal.NewController(sched)
	if !controller.Select(r, card) {
		return fmt.Errorf("%s has no explanation to show", category.Label())
	}
	sched.RunAll()

	snap := controller.Snapshot()
	_, err = fmt.Fprint(out, renderer.Detail(*snap.Detail, snap.Value))
	return err
}
