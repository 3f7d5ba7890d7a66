package engine

import (
	"strings"
	"testing"

	"github.com/eggscript/egg/internal/diag"
)

// recordingLogger captures every Log call's source, severity, and
// already-formatted message for assertion.
type recordingLogger struct {
	lines []string
	max   diag.Severity
}

func (r *recordingLogger) Log(source diag.Source, severity diag.Severity, message string) {
	r.lines = append(r.lines, message)
	r.max = diag.Max(r.max, severity)
}

func run(t *testing.T, resource, src string) (*recordingLogger, Severity) {
	t.Helper()
	logger := &recordingLogger{}
	e := CreateEngineFromTextStream(strings.NewReader(src), logger, Options{Resource: resource})
	return logger, e.Run()
}

func TestHelloWorld(t *testing.T) {
	logger, sev := run(t, "x.egg", "print(`Hello, World!`);")
	if sev != None {
		t.Fatalf("expected None severity, got %v (lines: %v)", sev, logger.lines)
	}
	if len(logger.lines) != 1 || logger.lines[0] != "Hello, World!" {
		t.Fatalf("unexpected output: %v", logger.lines)
	}
}

func TestArithmeticAndControlFlow(t *testing.T) {
	logger, sev := run(t, "x.egg", `
		var s = 0;
		for (var i = 1; i <= 10; ++i) { s += i; }
		print(s);
	`)
	if sev != None {
		t.Fatalf("expected None severity, got %v", sev)
	}
	if len(logger.lines) != 1 || logger.lines[0] != "55" {
		t.Fatalf("unexpected output: %v", logger.lines)
	}
}

func TestGeneratorNaturals(t *testing.T) {
	logger, sev := run(t, "x.egg", `
		int... naturals() { for (var i = 0; ; ++i) yield i; }
		var it = naturals();
		print(it(), it(), it());
	`)
	if sev != None {
		t.Fatalf("expected None severity, got %v", sev)
	}
	if len(logger.lines) != 1 || logger.lines[0] != "012" {
		t.Fatalf("unexpected output: %v", logger.lines)
	}
}

func TestUncaughtExceptionHasLocation(t *testing.T) {
	logger, sev := run(t, "x.egg", "throw `boom`;")
	if sev != Error {
		t.Fatalf("expected Error severity, got %v", sev)
	}
	want := "x.egg(1,1): boom"
	found := false
	for _, l := range logger.lines {
		if l == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected line %q, got %v", want, logger.lines)
	}
}

func TestTypeMismatchAtPrepareTime(t *testing.T) {
	logger, sev := run(t, "x.egg", `int x = "s";`)
	if sev != Error {
		t.Fatalf("expected Error severity, got %v", sev)
	}
	want := "x.egg(1,1): Cannot initialize 'x' of type 'int' with a value of type 'string'"
	found := false
	for _, l := range logger.lines {
		if l == want {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected line %q, got %v", want, logger.lines)
	}
}

func TestShadowingWarning(t *testing.T) {
	logger, sev := run(t, "x.egg", `
		var a = 1;
		{ var a = 2; print(a); }
		print(a);
	`)
	if sev != Warning {
		t.Fatalf("expected Warning severity, got %v", sev)
	}
	var userLines []string
	for _, l := range logger.lines {
		if l == "2" || l == "1" {
			userLines = append(userLines, l)
		}
	}
	if len(userLines) != 2 || userLines[0] != "2" || userLines[1] != "1" {
		t.Fatalf("expected user output [2 1], got %v", userLines)
	}
}

func TestCatchRecoversFromThrow(t *testing.T) {
	logger, sev := run(t, "x.egg", `
		try {
			throw `+"`oops`"+`;
		} catch (object e) {
			print(e.message);
		}
	`)
	if sev != None {
		t.Fatalf("expected None severity, got %v (lines: %v)", sev, logger.lines)
	}
	if len(logger.lines) != 1 || logger.lines[0] != "oops" {
		t.Fatalf("unexpected output: %v", logger.lines)
	}
}

func TestAssertPredicateEnrichment(t *testing.T) {
	logger, sev := run(t, "x.egg", `
		try {
			assert(1 == 2);
		} catch (object e) {
			print(e.left, e.operator, e.right);
		}
	`)
	if sev != None {
		t.Fatalf("expected None severity, got %v (lines: %v)", sev, logger.lines)
	}
	if len(logger.lines) != 1 || logger.lines[0] != "1==2" {
		t.Fatalf("unexpected output: %v", logger.lines)
	}
}
