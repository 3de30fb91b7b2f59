package report

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// appendFile appends content to path, creating the file if needed.
func appendFile(fs afero.Fs, path, content string) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}

	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write to %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
