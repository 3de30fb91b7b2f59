package report

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/boyarskiy/rspec-summary/internal/model"
)

const tableHeader = "| Example | Description | Message |\n| --- | --- | --- |\n"

// WriteMarkdown appends the Markdown summary to the step summary file at path.
func WriteMarkdown(fs afero.Fs, path string, summary *model.Summary, links model.Links) error {
	if summary == nil {
		return fmt.Errorf("summary is required")
	}
	return appendFile(fs, path, RenderMarkdown(summary, links))
}

// RenderMarkdown renders the summary as GitHub-flavored Markdown.
func RenderMarkdown(summary *model.Summary, links model.Links) string {
	if summary == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("### RSpec Summary\n\n")
	sb.WriteString(fmt.Sprintf("%d examples, %d failures, %d pending in %s\n\n",
		summary.TotalExamples,
		summary.TotalFailures,
		summary.TotalPending,
		FormatDuration(summary.MaxRuntime),
	))

	if len(summary.BrokenFiles) > 0 {
		sb.WriteString("#### Broken Files:\n")
		for _, file := range summary.BrokenFiles {
			sb.WriteString(fmt.Sprintf("- %s\n", file))
		}
	}

	if summary.TotalFailures > 0 {
		sb.WriteString("#### Failures:\n")
		sb.WriteString(tableHeader)
		for _, failure := range summary.Failures {
			ex := failure.Example
			cell := exampleLink(ex, links)
			if !summary.AllSameSeed {
				cell += fmt.Sprintf(" --seed %d", failure.Seed)
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | <pre>%s<br />%s</pre> |\n",
				cell,
				ex.FullDescription,
				ex.ExceptionClass(),
				markdownMessage(ex.ExceptionMessage()),
			))
		}
	}

	if summary.TotalPending > 0 {
		sb.WriteString("\n#### Pending:\n")
		sb.WriteString(tableHeader)
		for _, ex := range summary.Pending {
			msg := ""
			if ex.PendingMessage != nil {
				msg = *ex.PendingMessage
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | <pre>%s</pre> |\n",
				exampleLink(ex, links),
				ex.FullDescription,
				msg,
			))
		}
	}

	if summary.AllSameSeed && summary.TotalFailures > 0 {
		sb.WriteString(fmt.Sprintf("\nAll examples run with <code>--seed %d</code>\n", summary.Seed()))
	}

	return sb.String()
}

// exampleLink renders the example location as a link to its source line.
func exampleLink(ex model.Example, links model.Links) string {
	return fmt.Sprintf("[<code>%s</code>](%s)", ex.Location(), links.ExampleURL(ex))
}
