package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the speciesdiff domain.
// An *OpError of the matching kind satisfies errors.Is for each of them.
var (
	// ErrNotFound is returned when an input file does not exist.
	ErrNotFound = errors.New("speciesdiff: not found")

	// ErrDataFormat is returned when an input file is not a flat key->name mapping.
	ErrDataFormat = errors.New("speciesdiff: invalid data format")

	// ErrIOWrite is returned when a report cannot be written.
	ErrIOWrite = errors.New("speciesdiff: write failed")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("speciesdiff: invalid configuration")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindDataFormat    ErrorKind = "data_format"
	KindIOWrite       ErrorKind = "io_write"
	KindInvalidConfig ErrorKind = "invalid_config"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:      ErrNotFound,
	KindDataFormat:    ErrDataFormat,
	KindIOWrite:       ErrIOWrite,
	KindInvalidConfig: ErrInvalidConfig,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // optional
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// IsKind helps callers classify errors without depending on adapter packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// NotFound builds a KindNotFound error.
func NotFound(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindNotFound, Path: path, Err: err}
}

// DataFormat builds a KindDataFormat error.
func DataFormat(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindDataFormat, Path: path, Err: err}
}

// IOWrite builds a KindIOWrite error.
func IOWrite(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindIOWrite, Path: path, Err: err}
}

// InvalidConfig builds a KindInvalidConfig error.
func InvalidConfig(op string, err error) error {
	return &OpError{Op: op, Kind: KindInvalidConfig, Err: err}
}
