package main

import (
	"fmt"
	"os"

	"github.com/jonathan/credibility-report/internal/report"
	"github.com/jonathan/credibility-report/internal/types"
)

// readReport loads a stored report payload from disk.
func readReport(path string) (*types.Report, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	r, err := report.Parse(raw)
	if err != nil {
		if report.IsMissing(err) {
			return nil, fmt.Errorf("report file %s is empty", path)
		}
		return nil, fmt.Errorf("failed to parse report file %s: %w", path, err)
	}
	return r, nil
}

func markRequired(cmdFlags interface{ MarkFlagRequired(string) error }, names ...string) {
	for _, name := range names {
		if err := cmdFlags.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
