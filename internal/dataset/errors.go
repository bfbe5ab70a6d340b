package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the directory holds neither metadata.csv nor a
	// resumable metadata.edited.json.
	ErrNotFound = errors.New("dataset metadata not found")

	// ErrMalformed means the metadata could not be parsed.
	ErrMalformed = errors.New("malformed metadata")

	// ErrUnreadable means the chosen metadata file exists but could not be
	// read.
	ErrUnreadable = errors.New("dataset metadata unreadable")

	// ErrInvalidPattern means a regex search query did not compile.
	ErrInvalidPattern = errors.New("invalid search pattern")
)

// LoadError describes why a directory could not be opened. Kind is one of
// ErrNotFound, ErrUnreadable or ErrMalformed.
type LoadError struct {
	Kind error
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %v: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Kind)
}

func (e *LoadError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func malformed(path string, format string, args ...any) *LoadError {
	return &LoadError{Kind: ErrMalformed, Path: path, Err: fmt.Errorf(format, args...)}
}
