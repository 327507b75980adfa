package qrbatch

import (
	"errors"
	"fmt"
)

// ErrInvalidHeaderRow indicates a header row setting that is not a
// non-negative integer.
var ErrInvalidHeaderRow = errors.New("header row must be a non-negative integer")

// ErrUnsupportedFormat indicates a configuration file type with no provider.
var ErrUnsupportedFormat = errors.New("unsupported configuration format")

// ErrInvalidValue indicates a configuration value of the wrong shape.
var ErrInvalidValue = errors.New("invalid configuration value")

// ConfigError represents a configuration problem. The batch never starts.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error for %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{
		Key: key,
		Err: err,
	}
}

// SourceError represents a workbook that cannot be opened or read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("error reading workbook %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// SheetError represents a failure while processing a sheet. It aborts the
// sheet and the batch.
type SheetError struct {
	SheetName string
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("error processing sheet %q: %v", e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// RowError represents a failure on a single row. It is always reported
// inside a SheetError.
type RowError struct {
	SheetName string
	// Position is the zero-based data row index.
	Position int
	// Line is the 1-based spreadsheet row number.
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("error processing row %d (line %d) in sheet %q: %v", e.Position, e.Line, e.SheetName, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// EncodingError represents a QR code that could not be encoded or written.
type EncodingError struct {
	Path string
	Err  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("error generating qr code %s: %v", e.Path, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
