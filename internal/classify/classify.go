// Package classify folds parsed result files into summary counters and the
// ordered lists of failed and pending examples.
package classify

import (
	"github.com/boyarskiy/rspec-summary/internal/model"
)

// Aggregate folds per-file results, in order, into a Summary.
// Failure and pending lists keep file order, then example order within a file.
// Broken files contribute only their path.
func Aggregate(results []model.FileResult) *model.Summary {
	summary := &model.Summary{
		Failures:    []model.Failure{},
		Pending:     []model.Example{},
		BrokenFiles: []string{},
	}

	for _, result := range results {
		if result.Broken() {
			summary.BrokenFiles = append(summary.BrokenFiles, result.Path)
			continue
		}
		addReport(summary, result.Report)
	}

	summary.AllSameSeed = sameSeed(summary.Failures)
	return summary
}

// addReport accumulates a single run report into the summary.
func addReport(summary *model.Summary, report *model.RunReport) {
	// Slowest file wins; runtimes are never summed across files.
	if runtime := report.Runtime(); runtime > summary.MaxRuntime {
		summary.MaxRuntime = runtime
	}

	summary.TotalExamples += len(report.Examples)

	for _, example := range report.Examples {
		switch example.Status {
		case model.StatusFailed:
			summary.TotalFailures++
			summary.Failures = append(summary.Failures, model.Failure{
				Example: example,
				Seed:    report.Seed,
			})
		case model.StatusPending:
			summary.TotalPending++
			summary.Pending = append(summary.Pending, example)
		}
	}
}

// sameSeed reports whether all failures share one seed. Vacuously true when
// there are no failures.
func sameSeed(failures []model.Failure) bool {
	for _, f := range failures {
		if f.Seed != failures[0].Seed {
			return false
		}
	}
	return true
}
