package interp

import "github.com/eggscript/egg/internal/ast"

// GeneratorFunc is the callable produced by a generator definition
// (spec.md 4.5.5): calling it never runs the body directly, it builds
// and returns a fresh Generator iterator.
type GeneratorFunc struct {
	entry
	Name    string
	Params  []ast.Param
	Body    *ast.Block
	Closure *Scope
}

func NewGeneratorFunc(b *Basket, name string, params []ast.Param, body *ast.Block, closure *Scope) *GeneratorFunc {
	f := &GeneratorFunc{Name: name, Params: params, Body: body, Closure: closure}
	b.Add(f)
	return f
}

func (*GeneratorFunc) Type() string     { return "generator" }
func (f *GeneratorFunc) String() string { return "<generator " + f.Name + ">" }

// Generator is the iterator object a GeneratorFunc call produces. Each
// resume call runs the suspended body forward to its next `yield` (or
// to completion), exactly once per call — spec.md 4.5.5's "stackless
// coroutine" contract, implemented here with a goroutine whose own Go
// call stack plays the role of the explicit frame stack the spec
// describes: the handoff between resumeCh and yieldCh is a strict,
// single-suspension-point alternation, so the two goroutines are never
// concurrently running the way general goroutines are, only trading
// control synchronously (spec.md 5: "single-threaded, synchronous").
type Generator struct {
	entry
	resumeCh chan struct{}
	yieldCh  chan FlowControl
	done     bool
}

// newGenerator starts fn's body running in its own goroutine, blocked
// until the first resume.
func newGenerator(ev *Evaluator, fn *GeneratorFunc, args []Value) *Generator {
	g := &Generator{
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan FlowControl),
	}
	ev.basket.Add(g)

	scope := fn.Closure.Nested()
	ev.bindParams(scope, fn.Params, args)

	go func() {
		<-g.resumeCh
		result := ev.runGeneratorBody(g, scope, fn.Body)
		g.yieldCh <- result
	}()
	return g
}

func (*Generator) Type() string   { return "generator_iterator" }
func (*Generator) String() string { return "<generator iterator>" }

// resume advances g to its next yield (or completion) and returns the
// produced value, per spec.md 4.5.5: a generator that falls off the
// end returns Void, and so does every resume after that.
func (g *Generator) resume() Value {
	if g.done {
		return VoidValue
	}
	g.resumeCh <- struct{}{}
	fc := <-g.yieldCh
	switch fc.Kind {
	case FlowYield:
		return fc.Value
	case FlowThrow:
		g.done = true
		panic(exceptionSignal{value: fc.Value})
	default:
		g.done = true
		if fc.Value == nil {
			return VoidValue
		}
		return fc.Value
	}
}

// runGeneratorBody executes body to completion or its next yield,
// recovering a thrown exception so it can be re-raised in the
// resumer's goroutine rather than crashing the generator's.
func (ev *Evaluator) runGeneratorBody(g *Generator, scope *Scope, body *ast.Block) (result FlowControl) {
	defer func() {
		if r := recover(); r != nil {
			if sig, ok := r.(exceptionSignal); ok {
				result = FlowControl{Kind: FlowThrow, Value: sig.value}
				return
			}
			panic(r)
		}
	}()
	outer := ev.currentGenerator
	ev.currentGenerator = g
	defer func() { ev.currentGenerator = outer }()

	fc := ev.execBlock(scope, body)
	switch fc.Kind {
	case FlowReturn:
		return FlowControl{Kind: FlowReturn, Value: fc.Value}
	default:
		return FlowControl{Kind: FlowReturn, Value: VoidValue}
	}
}

// doYield is called by the tree walker when it executes a `yield`
// statement inside a generator body; it blocks until the holder of
// the Generator object calls resume again.
func (ev *Evaluator) doYield(g *Generator, v Value) {
	g.yieldCh <- FlowControl{Kind: FlowYield, Value: v}
	<-g.resumeCh
}
