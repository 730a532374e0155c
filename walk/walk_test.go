package walk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/widsnoy/airyc/depm"
	"github.com/widsnoy/airyc/report"
)

// loadAndAnalyze writes src to a temp entry file and runs the full
// load-then-analyze pipeline over it, as the driver does.
func loadAndAnalyze(t *testing.T, src string) (*depm.ModuleGraph, bool) {
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
	_, analyzed := AnalyzeAll(graph)
	return graph, analyzed
}

func TestAnalyzeAllAcceptsValidProgram(t *testing.T) {
	src := `
fn main() -> i32 {
	let a: i32 = 10;
	let p: *mut i32 = &a;
	*p = 20;
	return a;
}
`
	_, ok := loadAndAnalyze(t, src)
	if !ok {
		t.Fatal("a well-typed program should analyze cleanly")
	}
}

func TestAnalyzeAllRejectsSignedUnsignedMismatch(t *testing.T) {
	src := `
fn main() -> i32 {
	let a: i32 = 10u32;
	return a;
}
`
	_, ok := loadAndAnalyze(t, src)
	if ok {
		t.Fatal("assigning a u32 literal to an i32 binding must be rejected as a TypeMismatch")
	}
}

func TestAnalyzeAllRejectsRecursiveValueStruct(t *testing.T) {
	src := `
struct S {
	next: struct S,
}

fn main() -> i32 {
	return 0;
}
`
	_, ok := loadAndAnalyze(t, src)
	if ok {
		t.Fatal("a struct containing itself by value must be flagged RecursiveType")
	}
}

func TestAnalyzeAllAllowsRecursiveThroughPointer(t *testing.T) {
	src := `
struct Node {
	value: i32,
	next: *mut struct Node,
}

fn main() -> i32 {
	return 0;
}
`
	_, ok := loadAndAnalyze(t, src)
	if !ok {
		t.Fatal("a struct that recurses only through a pointer field should compile")
	}
}

func TestAnalyzeAllRejectsBreakOutsideLoop(t *testing.T) {
	src := `
fn main() -> i32 {
	break;
	return 0;
}
`
	_, ok := loadAndAnalyze(t, src)
	if ok {
		t.Fatal("break outside any loop must be rejected")
	}
}
