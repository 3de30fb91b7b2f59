// Package model defines shared data types for rspec-summary.
package model

import (
	"fmt"
	"strings"
)

// Status is the outcome RSpec recorded for a single example.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// DefaultSeed is used when a result file does not record a seed.
const DefaultSeed int64 = 0

// Exception describes the error raised by a failed example.
type Exception struct {
	Class   string `json:"class"`
	Message string `json:"message"`
}

// Example is one test case result from an RSpec JSON report.
type Example struct {
	ID              string     `json:"id"`
	Description     string     `json:"description"`
	FullDescription string     `json:"full_description"`
	Status          Status     `json:"status"`
	FilePath        string     `json:"file_path"`
	LineNumber      int        `json:"line_number"`
	RunTime         float64    `json:"run_time"`
	PendingMessage  *string    `json:"pending_message"`
	Exception       *Exception `json:"exception"`
}

// Location returns the example's "path:line" with any leading "./" removed.
func (e Example) Location() string {
	return fmt.Sprintf("%s:%d", e.RelativePath(), e.LineNumber)
}

// RelativePath returns the file path with any leading "./" removed.
func (e Example) RelativePath() string {
	return strings.TrimPrefix(e.FilePath, "./")
}

// ExceptionClass returns the exception class name, or "UnknownError".
func (e Example) ExceptionClass() string {
	if e.Exception == nil || e.Exception.Class == "" {
		return "UnknownError"
	}
	return e.Exception.Class
}

// ExceptionMessage returns the raw exception message, if any.
func (e Example) ExceptionMessage() string {
	if e.Exception == nil {
		return ""
	}
	return e.Exception.Message
}

// RunReport is the parsed contents of one RSpec JSON result file.
type RunReport struct {
	Seed     int64     `json:"seed"`
	Examples []Example `json:"examples"`
}

// Runtime returns the summed run time of all examples in the report.
func (r *RunReport) Runtime() float64 {
	var total float64
	for _, ex := range r.Examples {
		total += ex.RunTime
	}
	return total
}

// FileResult is the outcome of parsing a single result file.
// A nil Report marks the file as broken; Err then holds the reason.
type FileResult struct {
	Path   string
	Report *RunReport
	Err    error
}

// Broken reports whether the file could not be parsed into a RunReport.
func (f FileResult) Broken() bool {
	return f.Report == nil
}

// Failure pairs a failed example with the seed of the run that produced it.
type Failure struct {
	Example Example
	Seed    int64
}

// Summary is the aggregated state of all result files.
type Summary struct {
	TotalExamples int
	TotalFailures int
	TotalPending  int
	// MaxRuntime is the largest per-file sum of example run times, in seconds.
	MaxRuntime  float64
	Failures    []Failure
	Pending     []Example
	BrokenFiles []string
	AllSameSeed bool
}

// Seed returns the seed shared by the failures. Only meaningful when
// AllSameSeed is true and there is at least one failure.
func (s *Summary) Seed() int64 {
	if len(s.Failures) == 0 {
		return DefaultSeed
	}
	return s.Failures[0].Seed
}

// HasProblems reports whether any example failed or any file was broken.
func (s *Summary) HasProblems() bool {
	return s.TotalFailures > 0 || len(s.BrokenFiles) > 0
}

// Adapter defines the interface that result file parsers must implement.
type Adapter interface {
	// Name returns the name of the test framework the adapter understands.
	Name() string

	// Parse converts the raw contents of the file at path into a RunReport.
	Parse(path string, data []byte) (*RunReport, error)
}
