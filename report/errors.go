package report

import (
	"fmt"
	"os"
)

// LocalCompileError is a compilation error that occurs in a context in
// which the current file is already known by the caller (eg. inside a
// single declaration's analysis) and thus doesn't need to be threaded
// through every call in the walk. It is raised with panic and caught by
// CatchErrors at the boundary of the unit of work that can tolerate a
// partial failure (one declaration, one statement).
type LocalCompileError struct {
	Kind    Kind
	Help    string
	Message string
	Span    *TextSpan
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new local compile error ready to be panicked.
func Raise(span *TextSpan, kind Kind, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// RaiseHelp is Raise with an attached help line.
func RaiseHelp(span *TextSpan, kind Kind, help, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Kind: kind, Help: help, Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error. These are errors that
// specifically result from a bug or unexpected condition occurring within
// the compiler itself: they are not supposed to ever happen. ICEs are
// always displayed regardless of log level and immediately terminate the
// process.
func ReportICE(message string, args ...interface{}) {
	fmt.Printf("internal compiler error: %s\n", fmt.Sprintf(message, args...))
	fmt.Print("this is a bug in airyc, not in your program\n\n")
	os.Exit(-1)
}

// ReportFatal reports a fatal error: one that should stop compilation
// immediately because the compiler cannot even begin to reason about the
// program or finish the build (an unresolvable entry path, an unreadable
// or malformed manifest, an output directory or IR file that cannot be
// written, a failed link).
func ReportFatal(message string, args ...interface{}) {
	if rep == nil || rep.logLevel > LogLevelSilent {
		fmt.Printf("fatal error: %s\n\n", fmt.Sprintf(message, args...))
	}
	os.Exit(1)
}

// ReportStdError reports a non-fatal, standard Go error that occurred while
// trying to process a file (eg. an I/O failure).
func ReportStdError(reprPath string, err error) {
	Report(&Diagnostic{
		Kind:     KindParseError,
		Severity: SeverityError,
		ReprPath: reprPath,
		Message:  err.Error(),
	})
}

// -----------------------------------------------------------------------------

// CatchErrors catches any LocalCompileError (or plain error) thrown by a
// panic during a unit of work and folds it into the collected diagnostics.
// It determines how far a local failure is allowed to bubble: beyond the
// deferred call site, compilation of unrelated declarations continues.
//
// NB: this function must ALWAYS be deferred.
func CatchErrors(absPath, reprPath string) {
	if x := recover(); x != nil {
		if lce, ok := x.(*LocalCompileError); ok {
			ReportCompileError(absPath, reprPath, lce.Span, lce.Kind, lce.Help, lce.Message)
		} else if serr, ok := x.(error); ok {
			ReportStdError(reprPath, serr)
		} else {
			ReportICE("%v", x)
		}
	}
}
