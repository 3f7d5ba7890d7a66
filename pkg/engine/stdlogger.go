package engine

import (
	"fmt"
	"io"

	"github.com/eggscript/egg/internal/diag"
)

// StdLogger adapts Logger onto an io.Writer, one line per diagnostic,
// for host programs that just want engine output on a stream (spec.md
// 6.2). It is the only Logger implementation the engine package itself
// provides; anything richer (structured fields, a UI panel) is the
// host's concern.
type StdLogger struct {
	W io.Writer
}

// Log writes message as a single line; severity and source are not
// rendered since spec.md 6.2's wire format is message-only (with or
// without a location prefix already baked in by the caller).
func (s StdLogger) Log(source diag.Source, severity diag.Severity, message string) {
	fmt.Fprintln(s.W, message)
}
