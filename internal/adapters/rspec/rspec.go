// Package rspec implements the result file adapter for the RSpec JSON formatter.
package rspec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"

	"github.com/boyarskiy/rspec-summary/internal/model"
)

// Adapter implements model.Adapter for `rspec --format json` output.
type Adapter struct{}

// New creates a new RSpec adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the framework name.
func (a *Adapter) Name() string {
	return "rspec"
}

// Parse converts the contents of an RSpec JSON result file into a RunReport.
// Absent or null fields decode to zero values; a missing seed becomes
// model.DefaultSeed.
func (a *Adapter) Parse(path string, data []byte) (*model.RunReport, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{
			File:    path,
			Message: "file is empty",
			Action:  "Ensure RSpec completed and wrote its JSON output. The file should not be empty.",
		}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{
			File:    path,
			Message: fmt.Sprintf("invalid JSON: %v", err),
			Action:  "Ensure RSpec produced valid JSON output. The file may be truncated or mixed with other output.",
		}
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, &ParseError{
			File:    path,
			Message: fmt.Sprintf("unexpected document shape: %v", err),
			Action:  "Ensure the file was written by `rspec --format json`. A top-level \"examples\" array is required.",
		}
	}

	report := model.RunReport{Seed: model.DefaultSeed}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &ParseError{
			File:    path,
			Message: fmt.Sprintf("failed to decode: %v", err),
			Action:  "RSpec output is malformed. Check the field types of the reported examples.",
		}
	}
	if report.Examples == nil {
		report.Examples = []model.Example{}
	}

	return &report, nil
}

// ParseFile reads and parses the result file at path. It never fails: any
// fault is reported as a broken FileResult carrying the reason.
func ParseFile(fs afero.Fs, adapter model.Adapter, path string) model.FileResult {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return model.FileResult{
			Path: path,
			Err: &ParseError{
				File:    path,
				Message: fmt.Sprintf("failed to read file: %v", err),
				Action:  "Check that the file exists and is readable.",
			},
		}
	}

	report, err := adapter.Parse(path, data)
	if err != nil {
		return model.FileResult{Path: path, Err: err}
	}
	return model.FileResult{Path: path, Report: report}
}

// ParseError provides actionable error information for parsing failures.
type ParseError struct {
	File    string
	Message string
	Action  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s. %s", e.File, e.Message, e.Action)
}
