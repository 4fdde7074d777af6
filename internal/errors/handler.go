package errors

import (
	"fmt"
	"io"
	"os"
)

// Exit codes for different error types
const (
	ExitCodeSuccess      = 0
	ExitCodeGenericError = 1
	ExitCodeUsageError   = 2
)

// Handler processes errors at the top of the CLI and exits with the
// appropriate code
type Handler struct {
	// Writer is where error messages will be written
	Writer io.Writer
	// ExitFunc is the function called to exit the program with a specific code
	ExitFunc func(int)
	// Verbose enables more detailed error messages
	Verbose bool
}

// NewHandler creates a new Handler with default settings
func NewHandler() *Handler {
	return &Handler{
		Writer:   os.Stderr,
		ExitFunc: os.Exit,
		Verbose:  false,
	}
}

// WithWriter sets the writer for error output
func (h *Handler) WithWriter(w io.Writer) *Handler {
	h.Writer = w
	return h
}

// WithExitFunc sets the exit function
func (h *Handler) WithExitFunc(f func(int)) *Handler {
	h.ExitFunc = f
	return h
}

// WithVerbose sets the verbose flag
func (h *Handler) WithVerbose(v bool) *Handler {
	h.Verbose = v
	return h
}

// Handle processes an error and outputs it appropriately
func (h *Handler) Handle(err error) {
	if err == nil {
		return
	}

	exitCode := h.getExitCode(err)
	message := h.formatError(err)

	fmt.Fprintln(h.Writer, message)

	if h.ExitFunc != nil {
		h.ExitFunc(exitCode)
	}
}

// getExitCode determines the appropriate exit code based on the error type
func (h *Handler) getExitCode(err error) int {
	switch {
	case IsUsageError(err):
		return ExitCodeUsageError
	default:
		return ExitCodeGenericError
	}
}

// formatError creates a formatted error message based on the error type
func (h *Handler) formatError(err error) string {
	prefix := "Error:"

	if cliErr, ok := err.(*Error); ok {
		var message string

		if cliErr.Category != nil {
			prefix = h.getCategoryPrefix(cliErr.Category)
		}

		if h.Verbose {
			message = cliErr.FormattedError()
		} else {
			// In non-verbose mode, include the main error message and the first suggestion
			message = cliErr.Error()
			if len(cliErr.Suggestions) > 0 {
				message = fmt.Sprintf("%s\nTip: %s", message, cliErr.Suggestions[0])
			}
		}

		return fmt.Sprintf("%s %s", prefix, message)
	}

	return fmt.Sprintf("%s %s", prefix, err.Error())
}

// getCategoryPrefix returns an appropriate prefix for the error category
func (h *Handler) getCategoryPrefix(category error) string {
	switch category {
	case ErrConfiguration:
		return "Configuration Error:"
	case ErrUsage:
		return "Usage Error:"
	case ErrInternal:
		return "Internal Error:"
	default:
		return "Error:"
	}
}
