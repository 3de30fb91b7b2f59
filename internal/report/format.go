// Package report renders aggregated RSpec results as a Markdown step summary,
// a Slack notification payload, and a plain-text console summary.
package report

import (
	"math"
	"strconv"
	"strings"

	"github.com/acarl005/stripansi"
)

// FormatDuration formats seconds as e.g. "1h1m5s", truncating the fraction.
// Zero components are omitted, but seconds are always shown when hours and
// minutes are both zero, so the result is never empty.
func FormatDuration(seconds float64) string {
	var total int64
	switch {
	case math.IsNaN(seconds) || seconds < 0:
		total = 0
	case seconds >= math.MaxInt64:
		total = math.MaxInt64
	default:
		total = int64(seconds)
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	var sb strings.Builder
	if hours > 0 {
		sb.WriteString(strconv.FormatInt(hours, 10) + "h")
	}
	if minutes > 0 {
		sb.WriteString(strconv.FormatInt(minutes, 10) + "m")
	}
	if sb.Len() == 0 || secs > 0 {
		sb.WriteString(strconv.FormatInt(secs, 10) + "s")
	}
	return sb.String()
}

// markdownMessage prepares an exception message for a Markdown table cell.
func markdownMessage(msg string) string {
	return strings.ReplaceAll(stripansi.Strip(msg), "\n", "<br />")
}

// slackMessage prepares an exception message for a Slack code block.
func slackMessage(msg string) string {
	msg = stripansi.Strip(msg)
	msg = strings.ReplaceAll(msg, "`", "")
	return strings.TrimSpace(msg)
}
