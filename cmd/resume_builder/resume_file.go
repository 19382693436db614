package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/resume"
	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/schemas"
)

// readResumeFile loads a resume JSON file after checking it against the
// resume schema
func readResumeFile(path string) (*resume.Resume, error) {
	data, err := schemas.ReadResumeFile(path)
	if err != nil {
		var verr *schemas.ValidationError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("resume file not found: %s", path)
		case errors.As(err, &verr):
			return nil, fmt.Errorf("invalid resume file: %w", err)
		default:
			return nil, err
		}
	}

	var r resume.Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume JSON: %w", err)
	}
	return &r, nil
}

// readStylesFile loads template styles, or returns the defaults when path is empty
func readStylesFile(path string) (resume.Styles, error) {
	if path == "" {
		return resume.Styles{}.WithDefaults(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return resume.Styles{}, fmt.Errorf("failed to read styles file: %w", err)
	}
	var s resume.Styles
	if err := json.Unmarshal(data, &s); err != nil {
		return resume.Styles{}, fmt.Errorf("failed to unmarshal styles JSON: %w", err)
	}
	return s.WithDefaults(), nil
}

// writeOutput writes data to path, creating parent directories
func writeOutput(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
