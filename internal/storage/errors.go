package storage

import (
	"errors"
	"fmt"
)

var errNotArray = errors.New("content is not a JSON array")

// IOError reports a file that could not be read, written, created or renamed.
type IOError struct {
	Op   string // "read", "write", "create", "rename", ...
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports stored content that is not a list of the expected entity.
// The file is left untouched.
type ParseError struct {
	Path  string
	Index int // element index, or -1 when the top-level array itself is invalid
	Err   error
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to parse %s: element %d: %v", e.Path, e.Index, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func ioError(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
