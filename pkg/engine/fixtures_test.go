package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs a table of small but representative programs end to
// end through the public API and snapshots their logged output alongside
// the worst severity observed, the way the teacher's fixture harness
// snapshots whole-program behavior instead of asserting each line by hand.
func TestFixtures(t *testing.T) {
	fixtures := []struct {
		name string
		src  string
	}{
		{
			name: "ArrayBuiltins",
			src: `
				var a = [3, 1, 2];
				a.push(9);
				print(a.length, a[3], a.indexOf(1));
			`,
		},
		{
			name: "DictIterationOrder",
			src: `
				var d = {a: 1, b: 2};
				foreach (var kv in d) print(kv.key, kv.value);
			`,
		},
		{
			name: "ClosureCapturesByReference",
			src: `
				function counter() {
					var n = 0;
					return function() { return ++n; };
				}
				var c = counter();
				print(c(), c(), c());
			`,
		},
		{
			name: "ExceptionAsDictionary",
			src: `
				try {
					throw { message: "bad", code: 7 };
				} catch (object e) {
					print(e.message, e.code);
				}
			`,
		},
		{
			name: "NullCoalesceOnVoid",
			src: `
				function nothing() {}
				print(nothing() ?? "fallback");
			`,
		},
	}

	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			logger, sev := run(t, f.name+".egg", f.src)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_severity", f.name), sev)
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_output", f.name), strings.Join(logger.lines, "\n"))
		})
	}
}
