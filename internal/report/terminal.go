package report

import (
	"fmt"
	"io"

	"github.com/boyarskiy/rspec-summary/internal/model"
)

// RenderTerminal writes a plain-text summary for the CI step log. files is the
// number of result files collected, broken ones included.
func RenderTerminal(w io.Writer, summary *model.Summary, files int) error {
	if w == nil {
		return fmt.Errorf("writer is required")
	}
	if summary == nil {
		return fmt.Errorf("summary is required")
	}

	fmt.Fprintln(w, "=== RSpec Summary ===")
	fmt.Fprintf(w, "Result files: %d\n", files)
	fmt.Fprintf(w, "%d examples, %d failures, %d pending in %s\n",
		summary.TotalExamples, summary.TotalFailures, summary.TotalPending, FormatDuration(summary.MaxRuntime))

	if len(summary.BrokenFiles) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Broken files:")
		for _, file := range summary.BrokenFiles {
			fmt.Fprintf(w, "  %s\n", file)
		}
	}

	if len(summary.Failures) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Failures:")
		for _, failure := range summary.Failures {
			ex := failure.Example
			fmt.Fprintf(w, "  rspec %s --seed %d # %s\n", ex.Location(), failure.Seed, ex.FullDescription)
		}
	}

	return nil
}
