// Package runner wires the collect, parse, aggregate and render steps into a
// single pass over the configured result files.
package runner

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/boyarskiy/rspec-summary/internal/adapters/rspec"
	"github.com/boyarskiy/rspec-summary/internal/classify"
	"github.com/boyarskiy/rspec-summary/internal/collect"
	"github.com/boyarskiy/rspec-summary/internal/model"
	"github.com/boyarskiy/rspec-summary/internal/report"
)

// Config holds the configuration for a summary run.
type Config struct {
	// Pattern selects the result files; empty means collect.DefaultPattern.
	Pattern string
	// SummaryPath is the Markdown step summary file, appended to.
	SummaryPath string
	// OutputPath is the step output file receiving the notification, appended to.
	OutputPath string
	Links      model.Links
	// Adapter parses result files; nil means the RSpec adapter.
	Adapter model.Adapter
}

// Result holds the outcome of a run.
type Result struct {
	Files   []string
	Summary *model.Summary
}

// Validate checks the settings every run needs.
func (c *Config) Validate() error {
	if c.SummaryPath == "" {
		return fmt.Errorf("step summary path is required")
	}
	return nil
}

// Run collects, parses and aggregates the result files, then appends the
// Markdown summary and, when there are failures or broken files, the
// notification. Per-file faults never fail the run.
func Run(fs afero.Fs, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	adapter := cfg.Adapter
	if adapter == nil {
		adapter = rspec.New()
	}

	files, err := collect.Collect(fs, cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to collect result files: %w", err)
	}
	log := logrus.WithField("adapter", adapter.Name())
	log.WithFields(logrus.Fields{"pattern": cfg.Pattern, "files": len(files)}).Debug("Collected result files")

	results := make([]model.FileResult, 0, len(files))
	for _, file := range files {
		result := rspec.ParseFile(fs, adapter, file)
		if result.Broken() {
			log.WithField("file", file).WithError(result.Err).Warn("Broken result file")
		}
		results = append(results, result)
	}

	summary := classify.Aggregate(results)
	log.WithFields(logrus.Fields{
		"examples": summary.TotalExamples,
		"failures": summary.TotalFailures,
		"pending":  summary.TotalPending,
		"broken":   len(summary.BrokenFiles),
	}).Info("Aggregated results")

	if err := report.WriteMarkdown(fs, cfg.SummaryPath, summary, cfg.Links); err != nil {
		return nil, fmt.Errorf("failed to write step summary: %w", err)
	}

	if report.ShouldNotify(summary) {
		if cfg.OutputPath == "" {
			return nil, fmt.Errorf("output path is required to report %d failures and %d broken files",
				summary.TotalFailures, len(summary.BrokenFiles))
		}
		if err := report.WriteSlack(fs, cfg.OutputPath, summary, cfg.Links); err != nil {
			return nil, fmt.Errorf("failed to write notification: %w", err)
		}
	}

	return &Result{
		Files:   files,
		Summary: summary,
	}, nil
}
