package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/matzehuels/repeatmap/pkg/errors"
)

// Exit statuses returned by ExitCode.
const (
	ExitFailure      = 1
	ExitInvalidInput = 2
	ExitInterrupted  = 130
)

// ExitCode maps a command error to a process exit status. Rejected track or
// repeat data exits with ExitInvalidInput so scripts can tell bad input
// apart from runtime failures.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.IsCore(err):
		return ExitInvalidInput
	}
	return ExitFailure
}

// ReportError writes err to w. Diagram input errors get a hint pointing at
// the document.
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" Error: "+err.Error())
	if errors.IsCore(err) {
		fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf("%s: check the tracks and repeats of the input", errors.GetCode(err))))
	}
}
