package generate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/widsnoy/airyc/depm"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/walk"
)

// compile runs load, analyze, and lower over src, failing the test if
// analysis does not succeed.
func compile(t *testing.T, src string) *Output {
	t.Helper()
	report.ResetForTesting()
	report.InitReporter(report.LogLevelSilent)

	dir := t.TempDir()
	path := filepath.Join(dir, "main.airy")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	graph, loaded := depm.NewLoader(dir).Load(path)
	if !loaded {
		t.Fatalf("module failed to load:\n%s", src)
	}
	facts, analyzed := walk.AnalyzeAll(graph)
	if !analyzed {
		t.Fatalf("analysis failed:\n%s", src)
	}

	outs := GenerateAll(graph, facts)
	if len(outs) != 1 {
		t.Fatalf("expected exactly one generated module, got %d", len(outs))
	}
	return outs[0]
}

func TestGenerateSimpleFunctionEmitsRet(t *testing.T) {
	out := compile(t, `
fn main() -> i32 {
	let a: i32 = 10;
	return a;
}
`)
	ir := out.IR.String()
	if !strings.Contains(ir, "define i32 @main()") {
		t.Errorf("expected a defined i32 main function, got:\n%s", ir)
	}
	if !strings.Contains(ir, "alloca i32") {
		t.Errorf("expected an alloca for the local variable, got:\n%s", ir)
	}
	if !strings.Contains(ir, "ret i32") {
		t.Errorf("expected a ret instruction, got:\n%s", ir)
	}
}

func TestGenerateBoolStoresAsI8(t *testing.T) {
	out := compile(t, `
fn main() -> i32 {
	let flag: bool = true;
	if flag {
		return 1;
	}
	return 0;
}
`)
	ir := out.IR.String()
	if !strings.Contains(ir, "alloca i8") {
		t.Errorf("bool locals should be stored as i8, got:\n%s", ir)
	}
	if !strings.Contains(ir, "trunc i8") {
		t.Errorf("loading a bool should trunc the i8 storage back to i1, got:\n%s", ir)
	}
}

func TestGenerateShortCircuitAndUsesPhi(t *testing.T) {
	out := compile(t, `
fn truthy(x: i32) -> bool {
	return x != 0;
}

fn main() -> i32 {
	let a: i32 = 1;
	let b: i32 = 0;
	if truthy(a) && truthy(b) {
		return 1;
	}
	return 0;
}
`)
	ir := out.IR.String()
	if !strings.Contains(ir, "phi") {
		t.Errorf("short-circuit && should lower through a phi node, got:\n%s", ir)
	}
	// Each operand is lowered as its own call to truthy; the phi check
	// above covers the conditional join.
	if strings.Count(ir, "call i1 @truthy") < 2 {
		t.Errorf("expected two separate calls to truthy (one per operand), got:\n%s", ir)
	}
}

func TestGenerateStructFieldAccessUsesGEP(t *testing.T) {
	out := compile(t, `
struct Point {
	x: i32,
	y: i32,
}

fn main() -> i32 {
	let p: Point = {1, 2};
	return p.y;
}
`)
	ir := out.IR.String()
	if !strings.Contains(ir, "getelementptr") {
		t.Errorf("field access should lower to a getelementptr, got:\n%s", ir)
	}
	if !strings.Contains(ir, "%Point") && !strings.Contains(ir, "Point = type") {
		t.Errorf("expected a named struct type for Point, got:\n%s", ir)
	}
}
