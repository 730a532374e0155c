package report

import "sync"

// Kind is a stable diagnostic kind tag. These strings are surface-visible
// and must not change once released.
type Kind string

// Enumeration of the stable diagnostic kinds.
const (
	KindTypeMismatch         Kind = "TypeMismatch"
	KindConstantExprExpected Kind = "ConstantExprExpected"
	KindAssignToConst        Kind = "AssignToConst"
	KindNotALValue           Kind = "NotALValue"
	KindVoidPointerDeref     Kind = "VoidPointerDeref"
	KindInvalidVoidUsage     Kind = "InvalidVoidUsage"
	KindRecursiveType        Kind = "RecursiveType"
	KindCircularDependency   Kind = "CircularDependency"
	KindBreakOutsideLoop     Kind = "BreakOutsideLoop"
	KindContinueOutsideLoop  Kind = "ContinueOutsideLoop"
	KindUnresolvedName       Kind = "UnresolvedName"
	KindDuplicateDefinition  Kind = "DuplicateDefinition"
	KindArityMismatch        Kind = "ArityMismatch"
	KindParseError           Kind = "ParseError"
)

// Severity distinguishes an error (build-failing) from a warning.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Diagnostic is a single reported compiler message.
type Diagnostic struct {
	Kind     Kind
	Severity Severity

	// AbsPath is the absolute path of the file the diagnostic occurred in;
	// ReprPath is the path shown to the user (relative to the compilation
	// root when possible).
	AbsPath, ReprPath string

	// Span is the primary span of the diagnostic. It may be nil if the
	// diagnostic is not attributable to a specific span (eg. a missing
	// file).
	Span *TextSpan

	// Secondary holds auxiliary spans referenced by the message, eg. the
	// location of a prior conflicting definition.
	Secondary []*TextSpan

	Message string
	Help    string
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages to the user (default).
)

// Reporter is responsible for collecting diagnostics, warnings, and other
// kinds of messages produced during compilation. Diagnostics are collected,
// not thrown: analysis keeps going after a local failure so that a single
// compile can surface as many diagnostics as possible. The reporter is
// synchronized so that modules being compiled concurrently can all report
// into it safely.
type Reporter struct {
	m *sync.Mutex

	logLevel int

	diags      []*Diagnostic
	errorCount int
}

// rep is the global reporter instance.
var rep *Reporter

// InitReporter initializes the global error reporter to the given log
// level. If the reporter has already been initialized, this function does
// nothing.
func InitReporter(logLevel int) {
	if rep == nil {
		rep = &Reporter{
			m:        &sync.Mutex{},
			logLevel: logLevel,
		}
	}
}

// Report records a diagnostic. It does not print anything; call Render (or
// RenderAll) once compilation has finished to display collected
// diagnostics.
func Report(d *Diagnostic) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.diags = append(rep.diags, d)

	if d.Severity == SeverityError {
		rep.errorCount++
	}
}

// ReportCompileError collects a compilation error with a stable kind tag.
func ReportCompileError(absPath, reprPath string, span *TextSpan, kind Kind, help, message string) {
	Report(&Diagnostic{
		Kind:     kind,
		Severity: SeverityError,
		AbsPath:  absPath,
		ReprPath: reprPath,
		Span:     span,
		Message:  message,
		Help:     help,
	})
}

// AnyErrors returns whether or not any errors have been collected.
func AnyErrors() bool {
	return rep.errorCount > 0
}

// ShouldProceed indicates whether subsequent compiler phases should run:
// it is false once any error has been collected. Lowering in particular
// must only run if analysis produced zero errors.
func ShouldProceed() bool {
	return rep.errorCount == 0
}

// Diagnostics returns all diagnostics collected so far, in report order.
func Diagnostics() []*Diagnostic {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.diags
}

// ResetForTesting discards the global reporter so the next InitReporter
// call starts from a clean slate. The reporter is otherwise a process-
// lifetime singleton; only package tests that run several independent
// compiles in one process need this.
func ResetForTesting() {
	rep = nil
}
