// Package flags defines the rspec-summary command line flags. Every flag can
// also be set through the environment variable GitHub Actions provides.
package flags

import (
	"github.com/urfave/cli/v2"

	"github.com/boyarskiy/rspec-summary/internal/collect"
)

const (
	PatternFlagName     = "pattern"
	StepSummaryFlagName = "step-summary"
	OutputFlagName      = "output"
	ServerURLFlagName   = "server-url"
	RepositoryFlagName  = "repository"
	SHAFlagName         = "sha"
	RunIDFlagName       = "run-id"
	ActorFlagName       = "actor"
	LogLevelFlagName    = "log-level"
)

// Flags are built on every call: urfave/cli stores values read from the
// environment on the flag itself.
func requiredFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     StepSummaryFlagName,
			Required: true,
			EnvVars:  []string{"GITHUB_STEP_SUMMARY"},
			Usage:    "File the Markdown summary is appended to",
		},
		&cli.StringFlag{
			Name:     ServerURLFlagName,
			Required: true,
			EnvVars:  []string{"GITHUB_SERVER_URL"},
			Usage:    "GitHub server URL (e.g. 'https://github.com')",
		},
		&cli.StringFlag{
			Name:     RepositoryFlagName,
			Required: true,
			EnvVars:  []string{"GITHUB_REPOSITORY"},
			Usage:    "Repository in owner/name form",
		},
		&cli.StringFlag{
			Name:     SHAFlagName,
			Required: true,
			EnvVars:  []string{"GITHUB_SHA"},
			Usage:    "Commit SHA the tests ran against",
		},
		&cli.StringFlag{
			Name:     RunIDFlagName,
			Required: true,
			EnvVars:  []string{"GITHUB_RUN_ID"},
			Usage:    "Workflow run ID",
		},
	}
}

func optionalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    PatternFlagName,
			Value:   collect.DefaultPattern,
			EnvVars: []string{"PATTERN"},
			Usage:   "Glob selecting the RSpec JSON result files (supports **)",
		},
		&cli.StringFlag{
			Name:    OutputFlagName,
			EnvVars: []string{"GITHUB_OUTPUT"},
			Usage:   "File the slack_message output is appended to when tests failed",
		},
		&cli.StringFlag{
			Name:    ActorFlagName,
			EnvVars: []string{"GITHUB_ACTOR"},
			Usage:   "User that triggered the workflow",
		},
		&cli.StringFlag{
			Name:    LogLevelFlagName,
			Value:   "info",
			EnvVars: []string{"LOG_LEVEL"},
			Usage:   "Log level (trace, debug, info, warn, error)",
		},
	}
}

// Flags returns every flag the CLI accepts.
func Flags() []cli.Flag {
	return append(requiredFlags(), optionalFlags()...)
}
