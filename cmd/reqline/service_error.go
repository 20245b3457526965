// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/reqline/reqline/internal/issue"
)

// ServiceError carries what the CLI layer needs to report a failure: the error itself,
// an optional issue catalog entry, and an optional pre-rendered message.
// Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID selects the catalog entry printed after the error; 0 means none.
	IssueID issue.Id
	// StyledMessage is printed before the error when set.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// reportError prints err to stderr (with suggestions for actionable errors and, in
// verbose mode, the catalog entry) and returns an ExitError so fang stays quiet.
func reportError(stderr io.Writer, err error, verbose bool, glamourStyle string) error {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		svcErr = newServiceError(err, issue.IdFor(err), "")
	}
	renderServiceError(stderr, svcErr, verbose, glamourStyle)
	return &ExitError{Code: 1, Err: err}
}

// renderServiceError prints the styled message, the formatted error and, when verbose,
// the issue catalog entry.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, verbose bool, glamourStyle string) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(svcErr.Err, verbose))

	if !verbose || svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(glamourStyle)
		if renderErr != nil {
			log.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
			return
		}
		fmt.Fprint(stderr, rendered)
	}
}

// formatErrorForDisplay uses ActionableError.Format when available.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
