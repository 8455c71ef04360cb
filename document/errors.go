package document

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Sentinel errors. Errors returned by Open match exactly one of the first
// three with errors.Is.
var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFileName = errors.New("file name is invalid")
	ErrOther           = errors.New("unknown error")

	ErrInvalidLayout  = errors.New("section length, sections per line and chunk size must be positive")
	ErrLineOutOfRange = errors.New("line index out of range")
)

// Kind classifies the failures Open reports.
type Kind int

const (
	KindOther Kind = iota
	KindFileNotFound
	KindInvalidFileName
)

func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "file not found"
	case KindInvalidFileName:
		return "invalid file name"
	default:
		return "other"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindFileNotFound:
		return ErrFileNotFound
	case KindInvalidFileName:
		return ErrInvalidFileName
	default:
		return ErrOther
	}
}

// Error is returned by Open when the file cannot be loaded.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Error formats the failure with the path that caused it.
func (e *Error) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	if e.Path != "" {
		return msg + ": " + e.Path
	}
	return msg
}

// Unwrap returns the underlying I/O error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// classify maps an I/O failure onto the error taxonomy. Missing files and
// permission failures are both reported as not found.
func classify(path string, err error) *Error {
	kind := KindOther
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		kind = KindFileNotFound
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

func checkFileName(path string) error {
	if path == "" {
		return &Error{Kind: KindInvalidFileName, Err: errors.New("empty path")}
	}
	if strings.IndexByte(path, 0) >= 0 {
		return &Error{Kind: KindInvalidFileName, Path: path, Err: fmt.Errorf("%q contains a NUL byte", path)}
	}
	return nil
}
