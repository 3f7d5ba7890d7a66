// Package engine is the public API of the E interpreter (spec.md 6.1):
// build an Engine from raw source text or an already-parsed module,
// then Prepare, Execute, or Run it against a Logger.
package engine

import (
	"io"

	"github.com/eggscript/egg/internal/ast"
	"github.com/eggscript/egg/internal/diag"
	"github.com/eggscript/egg/internal/interp"
	"github.com/eggscript/egg/internal/lexer"
	"github.com/eggscript/egg/internal/parser"
	"github.com/eggscript/egg/internal/semantic"
	"github.com/eggscript/egg/internal/source"
)

// Severity re-exports diag.Severity: the value every Prepare/Execute/Run
// call returns, the max over everything logged during that call.
type Severity = diag.Severity

const (
	None        = diag.None
	Information = diag.Information
	Warning     = diag.Warning
	Error       = diag.Error
)

// Logger receives every diagnostic the engine produces, at both
// prepare time and run time (spec.md 6.2). Host programs that just
// want lines on a writer can use StdLogger.
type Logger = interp.Logger

// Options configures an Engine, mirroring the teacher's small
// functional-options struct rather than a config file or environment
// variables (no other configuration surface exists for a library).
type Options struct {
	// Resource names the source in diagnostics; defaults to "<input>".
	Resource string
	// CollectThreshold is how many basket objects may accumulate
	// between opportunistic Collect() sweeps during Execute; 0 disables
	// opportunistic collection (Collect still always runs once at
	// module end, per spec.md 5.3).
	CollectThreshold int
}

func (o Options) resource() string {
	if o.Resource == "" {
		return "<input>"
	}
	return o.Resource
}

// Engine prepares and executes one Module against a Logger.
type Engine struct {
	mod     *ast.Module
	logger  Logger
	opts    Options
	prep    *semantic.Preparer
	ev      *interp.Evaluator
	didPrep bool
}

// CreateEngineFromTextStream lexes and parses r as E source and builds
// an Engine over the result (spec.md 6.1's create_engine_from_text_stream).
// A parse error is reported through logger as a single Compiler/Error
// diagnostic and the returned Engine has no statements to run.
func CreateEngineFromTextStream(r io.Reader, logger Logger, opts Options) *Engine {
	resource := opts.resource()
	chars := source.NewCharStream(resource, r)
	text := source.NewTextStream(chars)
	tz := lexer.NewTokenizer(lexer.New(text))
	mod, err := parser.New(tz, resource).Parse()
	if err != nil {
		if logger != nil {
			logger.Log(diag.Compiler, diag.Error, err.Error())
		}
		mod = &ast.Module{Resource: resource}
	}
	return CreateEngineFromParsed(resource, mod, logger, opts)
}

// CreateEngineFromParsed builds an Engine directly from an already
// parsed module (spec.md 6.1's create_engine_from_parsed), for hosts
// that build or cache the AST themselves.
func CreateEngineFromParsed(resource string, mod *ast.Module, logger Logger, opts Options) *Engine {
	if opts.Resource == "" {
		opts.Resource = resource
	}
	ev := interp.NewEvaluator(resource, logger)
	ev.SetCollectThreshold(opts.CollectThreshold)
	return &Engine{
		mod:    mod,
		logger: logger,
		opts:   opts,
		prep:   semantic.NewPreparer(resource),
		ev:     ev,
	}
}

// Prepare type-checks and annotates the module, logging every
// diagnostic the preparer raised, and returns the worst severity seen.
func (e *Engine) Prepare() Severity {
	sev := e.prep.Prepare(e.mod)
	e.didPrep = true
	for _, d := range e.prep.Diagnostics() {
		if e.logger != nil {
			e.logger.Log(d.Source, d.Severity, d.Format())
		}
	}
	return sev
}

// Execute runs the module's top-level statements, preparing first if
// Prepare has not already been called, and returns the worst severity
// observed across preparation and execution.
func (e *Engine) Execute() Severity {
	prepSev := diag.None
	if !e.didPrep {
		prepSev = e.Prepare()
	} else {
		for _, d := range e.prep.Diagnostics() {
			prepSev = diag.Max(prepSev, d.Severity)
		}
	}
	runSev := e.ev.Run(e.mod)
	e.ev.Basket().Collect()
	return diag.Max(prepSev, runSev)
}

// Run prepares then executes, per spec.md 6.1.
func (e *Engine) Run() Severity {
	return e.Execute()
}
