// Package diag formats the diagnostics that flow through the engine's
// Logger (spec.md 6.2, 7): MSBuild-style "resource(line,col): message"
// lines, tagged with where the diagnostic came from and how severe it
// is. It plays the role the teacher's internal/errors package plays for
// the DWScript compiler, adapted to the wire format the Logger contract
// actually requires.
package diag

import (
	"fmt"

	"github.com/eggscript/egg/internal/source"
)

// Severity ranks a diagnostic; the engine reports the max severity seen
// across a Prepare/Execute/Run call (spec.md 6.1).
type Severity int

const (
	None Severity = iota
	Information
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case None:
		return "none"
	case Information:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Max returns the more severe of a and b.
func Max(a, b Severity) Severity {
	if b > a {
		return b
	}
	return a
}

// Source distinguishes who raised a diagnostic (spec.md 6.2).
type Source int

const (
	Compiler Source = iota
	Runtime
	User
)

func (s Source) String() string {
	switch s {
	case Compiler:
		return "compiler"
	case Runtime:
		return "runtime"
	case User:
		return "user"
	default:
		return "unknown"
	}
}

// Diagnostic is one reportable event: a located or unlocated message at
// a given severity, from a given source.
type Diagnostic struct {
	Source   Source
	Severity Severity
	Message  string
	Resource string
	Span     source.Span // zero value: no location
}

// Format renders the MSBuild-style line the Logger contract requires:
// "resource(line,col): message" with a location, bare "message"
// without one. print/assert output carries no location and no prefix.
func (d Diagnostic) Format() string {
	loc := d.Span.String()
	if loc == "" {
		return d.Message
	}
	if d.Resource == "" {
		return fmt.Sprintf("%s: %s", loc, d.Message)
	}
	return fmt.Sprintf("%s%s: %s", d.Resource, loc, d.Message)
}

// Error is a single compile-time diagnostic. Parser errors carry no
// Source field because they always originate at Compiler severity
// Error and parsing aborts on the first one (spec.md 4.3.2).
type Error struct {
	Span    source.Span
	Message string
}

func (e *Error) Error() string {
	return (Diagnostic{Severity: Error, Message: e.Message, Span: e.Span}).Format()
}

// New builds a *Error at span with a formatted message.
func New(span source.Span, format string, args ...any) *Error {
	return &Error{Span: span, Message: fmt.Sprintf(format, args...)}
}
