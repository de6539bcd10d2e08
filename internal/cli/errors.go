package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"ccwc/internal/input"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeUsage         ErrorType = "usage"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeFileIO        ErrorType = "file_io"
	ErrorTypeEncoding      ErrorType = "encoding"
	ErrorTypeInternal      ErrorType = "internal"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError marks a problem with the command line itself.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ConfigError marks a failure to load or validate the config file.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrorReport is a categorized, human-readable description of an error.
type ErrorReport struct {
	Type        ErrorType
	Code        string
	Title       string
	Details     string
	Suggestions []string
}

// ExitCode returns the process exit code for the report's category.
func (r ErrorReport) ExitCode() int {
	if r.Type == ErrorTypeUsage {
		return ExitUsage
	}

	return ExitFailure
}

// CategorizeError analyzes an error and returns an appropriate ErrorReport
func CategorizeError(err error) ErrorReport {
	if err == nil {
		return ErrorReport{
			Type:    ErrorTypeInternal,
			Code:    "unknown_error",
			Title:   "unexpected error",
			Details: "no error details available",
		}
	}

	var (
		usageErr  *UsageError
		configErr *ConfigError
		ioErr     *input.IOError
	)

	switch {
	case errors.As(err, &usageErr):
		return ErrorReport{
			Type:        ErrorTypeUsage,
			Code:        "invalid_arguments",
			Title:       "invalid arguments",
			Details:     err.Error(),
			Suggestions: []string{"Run 'ccwc --help' for usage."},
		}

	case errors.As(err, &configErr):
		return ErrorReport{
			Type:    ErrorTypeConfiguration,
			Code:    "config_error",
			Title:   "configuration error",
			Details: err.Error(),
			Suggestions: []string{
				"Check the TOML syntax of the file passed with --config.",
				"Valid measurements are bytes, chars, lines and words; valid formats are text, json and csv.",
			},
		}

	case errors.As(err, &ioErr):
		return categorizeIOError(ioErr)

	default:
		return ErrorReport{
			Type:    ErrorTypeInternal,
			Code:    "processing_error",
			Title:   "processing error",
			Details: err.Error(),
		}
	}
}

func categorizeIOError(err *input.IOError) ErrorReport {
	report := ErrorReport{
		Type:    ErrorTypeFileIO,
		Details: err.Error(),
	}

	switch {
	case errors.Is(err, input.ErrInvalidEncoding):
		report.Type = ErrorTypeEncoding
		report.Code = "invalid_encoding"
		report.Title = "input is not valid UTF-8 text"
		report.Suggestions = []string{"Use -z/--decompress for gzip or zstd compressed input."}

	case err.Op == "decompress":
		report.Code = "decompress_error"
		report.Title = "compressed input is corrupt"

	case errors.Is(err, fs.ErrNotExist):
		report.Code = "file_not_found"
		report.Title = "no such file"

	case errors.Is(err, fs.ErrPermission):
		report.Code = "permission_denied"
		report.Title = "permission denied"

	case err.Path == "":
		report.Code = "stdin_read_error"
		report.Title = "cannot read standard input"

	default:
		report.Code = "file_read_error"
		report.Title = "cannot read file"
	}

	return report
}

// WriteErrorReport writes a categorized error to w.
func WriteErrorReport(w io.Writer, err error) ErrorReport {
	report := CategorizeError(err)

	var b strings.Builder

	fmt.Fprintf(&b, "ccwc: %s: %s\n", report.Title, report.Details)

	for _, s := range report.Suggestions {
		fmt.Fprintf(&b, "  %s\n", s)
	}

	_, _ = io.WriteString(w, b.String())

	return report
}
