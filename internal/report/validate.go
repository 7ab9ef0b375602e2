package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationError is a pre-flight rejection of a selected file. It is shown
// to the user verbatim and never triggers a network call.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Reason)
}

// ValidateSelection checks a candidate file before it may replace the current
// selection. Only the extension and size are checked; content validation is
// the server's job.
func ValidateSelection(name string, size int64) error {
	if !strings.EqualFold(filepath.Ext(name), ".csv") {
		return &ValidationError{Name: name, Reason: "please select a CSV file"}
	}
	if size > MaxUploadBytes {
		return &ValidationError{
			Name:   name,
			Reason: fmt.Sprintf("file exceeds the %s limit", FormatFileSize(MaxUploadBytes)),
		}
	}
	return nil
}

// Select stats and validates a file on disk, returning it as the new
// selection. On any error the caller's prior selection must be kept.
func Select(path string) (SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SelectedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return SelectedFile{}, &ValidationError{Name: info.Name(), Reason: "is a directory"}
	}
	if err := ValidateSelection(info.Name(), info.Size()); err != nil {
		return SelectedFile{}, err
	}
	return SelectedFile{Path: path, Name: info.Name(), Size: info.Size()}, nil
}
