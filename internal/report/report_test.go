package report

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boyarskiy/rspec-summary/internal/model"
)

func strPtr(s string) *string {
	return &s
}

func fixtureLinks() model.Links {
	return model.Links{
		ServerURL:  "https://github.com",
		Repository: "p-wall/rspec-summary-action",
		SHA:        "abc123abc123abc123",
		RunID:      "123456",
		Actor:      "p-wall",
	}
}

func failedExample(line int, description, class, message string) model.Example {
	return model.Example{
		ID:              fmt.Sprintf("./spec/example_spec.rb[1:%d]", line),
		FullDescription: description,
		Status:          model.StatusFailed,
		FilePath:        "./spec/example_spec.rb",
		LineNumber:      line,
		Exception:       &model.Exception{Class: class, Message: message},
	}
}

// fixtureSummary is the aggregate of one file with one pass, two failures and
// one pending example, all run with seed 12345.
func fixtureSummary() *model.Summary {
	return &model.Summary{
		TotalExamples: 4,
		TotalFailures: 2,
		TotalPending:  1,
		MaxRuntime:    76.2,
		Failures: []model.Failure{
			{
				Example: failedExample(15, "RSpec Summary Generator fails intentionally",
					"RSpec::Expectations::ExpectationNotMetError", "expected: 2\n     got: 1"),
				Seed: 12345,
			},
			{
				Example: failedExample(16, "RSpec Summary Generator fails with color codes",
					"RSpec::Expectations::ExpectationNotMetError", "Expected \u001b[33m\"foo\"\u001b[0m\nto include \u001b[35m\"bar\"\u001b[0m"),
				Seed: 12345,
			},
		},
		Pending: []model.Example{
			{
				ID:              "./spec/example_spec.rb[1:4]",
				FullDescription: "RSpec Summary Generator is pending",
				Status:          model.StatusPending,
				FilePath:        "./spec/example_spec.rb",
				LineNumber:      20,
				PendingMessage:  strPtr("Not implemented yet"),
			},
		},
		BrokenFiles: []string{},
		AllSameSeed: true,
	}
}

// assertGolden compares got with testdata/<name>. Run with UPDATE_GOLDEN=1 to
// rewrite the file.
func assertGolden(t *testing.T, name, got string) {
	t.Helper()
	goldenPath := filepath.Join("testdata", name)

	if os.Getenv("UPDATE_GOLDEN") == "1" {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(got), 0644))
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	want, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "run with UPDATE_GOLDEN=1 to create %s", goldenPath)

	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
}

func TestMarkdownOutputGolden(t *testing.T) {
	assertGolden(t, "markdown_output.golden", RenderMarkdown(fixtureSummary(), fixtureLinks()))
}

func TestSlackOutputGolden(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, WriteSlack(fs, "/github/output", fixtureSummary(), fixtureLinks()))

	got, err := afero.ReadFile(fs, "/github/output")
	require.NoError(t, err)
	assertGolden(t, "slack_output.golden", string(got))
}

func TestTerminalOutputGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTerminal(&buf, fixtureSummary(), 1))
	assertGolden(t, "terminal_output.golden", buf.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0s"},
		{0.9, "0s"},
		{45, "45s"},
		{59, "59s"},
		{59.99, "59s"},
		{60, "1m"},
		{76.2, "1m16s"},
		{125, "2m5s"},
		{1800, "30m"},
		{3600, "1h"},
		{3601, "1h1s"},
		{3665, "1h1m5s"},
		{7260, "2h1m"},
		{-5, "0s"},
		{math.NaN(), "0s"},
		{9.3e18, "2562047788015215h30m7s"},
		{1e300, "2562047788015215h30m7s"},
		{math.Inf(1), "2562047788015215h30m7s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input), "FormatDuration(%v)", tt.input)
		})
	}
}

func TestFormatDurationShape(t *testing.T) {
	shape := regexp.MustCompile(`^(\d+h)?(\d+m)?(\d+s)?$`)
	inputs := []float64{math.MaxInt64, 9.2e18, 1e19, math.MaxFloat64, math.Inf(1)}
	for s := 0.0; s < 3*3600; s += 37.3 {
		inputs = append(inputs, s)
	}
	for _, s := range inputs {
		got := FormatDuration(s)
		assert.NotEmpty(t, got)
		assert.Regexp(t, shape, got)
	}
}

func TestMarkdownSeedsDiffer(t *testing.T) {
	summary := fixtureSummary()
	summary.Failures[1].Seed = 999
	summary.AllSameSeed = false

	md := RenderMarkdown(summary, fixtureLinks())

	assert.Contains(t, md, "| [<code>spec/example_spec.rb:15</code>](https://github.com/p-wall/rspec-summary-action/blob/abc123abc123abc123/spec/example_spec.rb#L15) --seed 12345 | ")
	assert.Contains(t, md, "| [<code>spec/example_spec.rb:16</code>](https://github.com/p-wall/rspec-summary-action/blob/abc123abc123abc123/spec/example_spec.rb#L16) --seed 999 | ")
	assert.NotContains(t, md, "All examples run with")
}

func TestMarkdownSameSeedHasNoRowSuffix(t *testing.T) {
	md := RenderMarkdown(fixtureSummary(), fixtureLinks())

	assert.NotContains(t, md, ") --seed")
	assert.True(t, strings.HasSuffix(md, "All examples run with <code>--seed 12345</code>\n"))
}

func TestMarkdownNoFailures(t *testing.T) {
	summary := fixtureSummary()
	summary.TotalFailures = 0
	summary.Failures = []model.Failure{}

	md := RenderMarkdown(summary, fixtureLinks())

	assert.Contains(t, md, "4 examples, 0 failures, 1 pending in 1m16s")
	assert.NotContains(t, md, "#### Failures:")
	assert.NotContains(t, md, "All examples run with")
	assert.Contains(t, md, "#### Pending:")
}

func TestMarkdownNoPending(t *testing.T) {
	summary := fixtureSummary()
	summary.TotalPending = 0
	summary.Pending = []model.Example{}

	md := RenderMarkdown(summary, fixtureLinks())

	assert.NotContains(t, md, "#### Pending:")
	assert.Contains(t, md, "#### Failures:")
}

func TestMarkdownEmptySummary(t *testing.T) {
	md := RenderMarkdown(&model.Summary{AllSameSeed: true}, fixtureLinks())
	assert.Equal(t, "### RSpec Summary\n\n0 examples, 0 failures, 0 pending in 0s\n\n", md)
	assert.Equal(t, "", RenderMarkdown(nil, fixtureLinks()))
}

func TestMarkdownBrokenFiles(t *testing.T) {
	summary := &model.Summary{
		BrokenFiles: []string{"tmp/rspec-1.json", "tmp/rspec-2.json"},
		AllSameSeed: true,
	}

	md := RenderMarkdown(summary, fixtureLinks())

	assert.Contains(t, md, "#### Broken Files:\n- tmp/rspec-1.json\n- tmp/rspec-2.json\n")
	assert.NotContains(t, md, "#### Failures:")
}

func TestMarkdownMessageDefaults(t *testing.T) {
	summary := &model.Summary{
		TotalExamples: 2,
		TotalFailures: 1,
		TotalPending:  1,
		Failures: []model.Failure{{
			Example: model.Example{FilePath: "spec/a_spec.rb", LineNumber: 3, FullDescription: "A raises", Status: model.StatusFailed},
			Seed:    1,
		}},
		Pending: []model.Example{
			{FilePath: "spec/a_spec.rb", LineNumber: 9, FullDescription: "A waits", Status: model.StatusPending},
		},
		AllSameSeed: true,
	}

	md := RenderMarkdown(summary, fixtureLinks())

	assert.Contains(t, md, "| A raises | <pre>UnknownError<br /></pre> |")
	assert.Contains(t, md, "| A waits | <pre></pre> |")
}

func TestMarkdownKeepsBackticks(t *testing.T) {
	summary := fixtureSummary()
	summary.Failures[0].Example.Exception.Message = "undefined method `foo'"

	md := RenderMarkdown(summary, fixtureLinks())
	assert.Contains(t, md, "<pre>RSpec::Expectations::ExpectationNotMetError<br />undefined method `foo'</pre>")
}

func TestANSIStripping(t *testing.T) {
	summary := &model.Summary{
		TotalExamples: 1,
		TotalFailures: 1,
		Failures: []model.Failure{{
			Example: failedExample(7, "colors", "RuntimeError", "\u001b[33mfoo\u001b[0m"),
			Seed:    1,
		}},
		AllSameSeed: true,
	}

	md := RenderMarkdown(summary, fixtureLinks())
	assert.Contains(t, md, "<pre>RuntimeError<br />foo</pre>")
	assert.NotContains(t, md, "\u001b")

	slack := RenderSlack(summary, fixtureLinks())
	assert.Contains(t, slack, "```RuntimeError\nfoo```\n")
	assert.NotContains(t, slack, "\u001b")
}

func TestSlackMessageCleanup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "boom", want: "boom"},
		{name: "trims whitespace", input: "\n  boom \n\n", want: "boom"},
		{name: "removes backticks", input: "undefined method `foo' for nil", want: "undefined method foo' for nil"},
		{name: "strips ANSI", input: "\u001b[1;31mred\u001b[0m text", want: "red text"},
		{name: "keeps inner newlines", input: "a\nb", want: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slackMessage(tt.input))
		})
	}
}

func TestSlackSeedsDiffer(t *testing.T) {
	summary := fixtureSummary()
	summary.Failures[1].Seed = 999
	summary.AllSameSeed = false

	slack := RenderSlack(summary, fixtureLinks())

	assert.Contains(t, slack, "|spec/example_spec.rb:15> --seed 12345\n")
	assert.Contains(t, slack, "|spec/example_spec.rb:16> --seed 999\n")
}

func TestSlackLimitsFailures(t *testing.T) {
	summary := &model.Summary{AllSameSeed: true}
	for i := 1; i <= 8; i++ {
		summary.Failures = append(summary.Failures, model.Failure{
			Example: failedExample(i, fmt.Sprintf("fails %d", i), "RuntimeError", "boom"),
			Seed:    1,
		})
	}
	summary.TotalFailures = len(summary.Failures)
	summary.TotalExamples = len(summary.Failures)

	slack := RenderSlack(summary, fixtureLinks())

	assert.Contains(t, slack, "*RSpec Failures (8 total):*\n")
	assert.Equal(t, MaxNotifiedFailures, strings.Count(slack, "• <"))
	assert.Contains(t, slack, "|spec/example_spec.rb:5>")
	assert.NotContains(t, slack, "|spec/example_spec.rb:6>")
}

func TestSlackBrokenFiles(t *testing.T) {
	summary := &model.Summary{
		BrokenFiles: []string{"tmp/empty.json"},
		AllSameSeed: true,
	}

	slack := RenderSlack(summary, fixtureLinks())

	want := "<https://github.com/p-wall/rspec-summary-action/actions/runs/123456|GitHub Actions> saw test failures for " +
		"<https://github.com/p-wall/rspec-summary-action/commit/abc123abc123abc123|abc123a> by p-wall:\n" +
		"*RSpec Failures (0 total):*\n" +
		"• Broken file: tmp/empty.json\n"
	assert.Equal(t, want, slack)
}

func TestShouldNotify(t *testing.T) {
	assert.False(t, ShouldNotify(nil))
	assert.False(t, ShouldNotify(&model.Summary{TotalExamples: 3, TotalPending: 1}))
	assert.True(t, ShouldNotify(&model.Summary{BrokenFiles: []string{"x.json"}}))
	assert.True(t, ShouldNotify(fixtureSummary()))
}

func TestWriteSlackSkipsWhenNothingFailed(t *testing.T) {
	fs := afero.NewMemMapFs()
	summary := &model.Summary{TotalExamples: 2, AllSameSeed: true}

	require.NoError(t, WriteSlack(fs, "/github/output", summary, fixtureLinks()))

	exists, err := afero.Exists(fs, "/github/output")
	require.NoError(t, err)
	assert.False(t, exists, "output file must not be created")
}

func TestWriteSlackRequiresPath(t *testing.T) {
	err := WriteSlack(afero.NewMemMapFs(), "", fixtureSummary(), fixtureLinks())
	assert.ErrorContains(t, err, "output path is required")
}

func TestWriteMarkdownAppends(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/github/step_summary", []byte("## Earlier step\n"), 0644))

	require.NoError(t, WriteMarkdown(fs, "/github/step_summary", fixtureSummary(), fixtureLinks()))

	got, err := afero.ReadFile(fs, "/github/step_summary")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(got), "## Earlier step\n### RSpec Summary\n"))
	assert.Equal(t, 1, strings.Count(string(got), "### RSpec Summary"))
}

func TestWriteMarkdownErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.ErrorContains(t, WriteMarkdown(fs, "/github/step_summary", nil, fixtureLinks()), "summary is required")
	assert.ErrorContains(t, WriteMarkdown(fs, "", fixtureSummary(), fixtureLinks()), "output path is required")

	readOnly := afero.NewReadOnlyFs(afero.NewMemMapFs())
	assert.Error(t, WriteMarkdown(readOnly, "/github/step_summary", fixtureSummary(), fixtureLinks()))
}

func TestRenderTerminalErrors(t *testing.T) {
	assert.Error(t, RenderTerminal(nil, fixtureSummary(), 1))
	assert.Error(t, RenderTerminal(&bytes.Buffer{}, nil, 0))
}

func TestRenderTerminalBrokenFiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTerminal(&buf, &model.Summary{BrokenFiles: []string{"bad.json"}, AllSameSeed: true}, 1))

	assert.Contains(t, buf.String(), "Result files: 1\n")
	assert.Contains(t, buf.String(), "Broken files:\n  bad.json\n")
	assert.NotContains(t, buf.String(), "Failures:")
}
