// Package main is the entry point for the rspec-summary CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/boyarskiy/rspec-summary/internal/flags"
	"github.com/boyarskiy/rspec-summary/internal/model"
	"github.com/boyarskiy/rspec-summary/internal/report"
	"github.com/boyarskiy/rspec-summary/internal/runner"
)

const (
	exitSuccess = 0
	exitError   = 1
)

const description = "Aggregates rspec --format json result files, appends a Markdown report to the step " +
	"summary and, when examples failed or files were unreadable, exports a slack_message step output."

var Version = "v1.0.0"

func main() {
	os.Exit(run(os.Args, afero.NewOsFs(), os.Stdout))
}

func run(args []string, fs afero.Fs, stdout io.Writer) int {
	app := newApp(fs, stdout)
	if err := app.Run(args); err != nil {
		logrus.WithError(err).Error("rspec-summary failed")
		return exitError
	}
	return exitSuccess
}

func newApp(fs afero.Fs, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:        "rspec-summary",
		Usage:       "Summarize RSpec JSON results for GitHub Actions",
		Description: description,
		Version:     Version,
		Flags:       flags.Flags(),
		Writer:      stdout,
		Action: func(c *cli.Context) error {
			return summarize(c, fs, stdout)
		},
	}
}

func summarize(c *cli.Context, fs afero.Fs, stdout io.Writer) error {
	if err := setupLogging(c.String(flags.LogLevelFlagName)); err != nil {
		return err
	}

	cfg := configFromContext(c)
	logrus.WithFields(logrus.Fields{
		"pattern":    cfg.Pattern,
		"repository": cfg.Links.Repository,
		"sha":        cfg.Links.SHA,
	}).Debug("Starting summary")

	result, err := runner.Run(fs, cfg)
	if err != nil {
		return err
	}

	return report.RenderTerminal(stdout, result.Summary, len(result.Files))
}

// configFromContext maps the parsed flags, and the environment variables
// backing them, onto the runner configuration.
func configFromContext(c *cli.Context) *runner.Config {
	return &runner.Config{
		Pattern:     c.String(flags.PatternFlagName),
		SummaryPath: c.String(flags.StepSummaryFlagName),
		OutputPath:  c.String(flags.OutputFlagName),
		Links: model.Links{
			ServerURL:  c.String(flags.ServerURLFlagName),
			Repository: c.String(flags.RepositoryFlagName),
			SHA:        c.String(flags.SHAFlagName),
			RunID:      c.String(flags.RunIDFlagName),
			Actor:      c.String(flags.ActorFlagName),
		},
	}
}

func setupLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}
