package report

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/boyarskiy/rspec-summary/internal/model"
)

// MaxNotifiedFailures caps the failing examples listed in a notification.
const MaxNotifiedFailures = 5

// slackOutputName is the step output the notification is exported as.
const slackOutputName = "slack_message"

// ShouldNotify reports whether a failure notification is warranted.
func ShouldNotify(summary *model.Summary) bool {
	return summary != nil && summary.HasProblems()
}

// WriteSlack appends the notification to the step output file at path as a
// heredoc-delimited "slack_message" output. Nothing is written, and the file
// is not created, when there is nothing to report.
func WriteSlack(fs afero.Fs, path string, summary *model.Summary, links model.Links) error {
	if !ShouldNotify(summary) {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(slackOutputName + "<<EOF\n")
	sb.WriteString(RenderSlack(summary, links))
	sb.WriteString("EOF\n")

	return appendFile(fs, path, sb.String())
}

// RenderSlack renders the Slack mrkdwn notification payload. Every line,
// including the last, ends with a newline.
func RenderSlack(summary *model.Summary, links model.Links) string {
	if summary == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<%s|GitHub Actions> saw test failures for <%s|%s> by %s:\n",
		links.RunURL(),
		links.CommitURL(),
		links.ShortSHA(),
		links.Actor,
	))
	sb.WriteString(fmt.Sprintf("*RSpec Failures (%d total):*\n", summary.TotalFailures))

	for _, file := range summary.BrokenFiles {
		sb.WriteString(fmt.Sprintf("• Broken file: %s\n", file))
	}

	failures := summary.Failures
	if len(failures) > MaxNotifiedFailures {
		failures = failures[:MaxNotifiedFailures]
	}
	for _, failure := range failures {
		ex := failure.Example
		sb.WriteString(fmt.Sprintf("• <%s|%s>", links.ExampleURL(ex), ex.Location()))
		if !summary.AllSameSeed {
			sb.WriteString(fmt.Sprintf(" --seed %d", failure.Seed))
		}
		sb.WriteString(fmt.Sprintf("\n```%s\n%s```\n", ex.ExceptionClass(), slackMessage(ex.ExceptionMessage())))
	}

	return sb.String()
}
