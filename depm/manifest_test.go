package depm

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifestMissingFileYieldsZeroValue(t *testing.T) {
	dir := t.TempDir()

	m, ok := LoadManifest(dir)
	if !ok {
		t.Fatal("a missing manifest must not be treated as an error")
	}
	if m.Name != "" || m.OutputPath != "" || m.RuntimePath != "" || len(m.LinkObjects) != 0 {
		t.Fatalf("missing manifest should yield a zero-value Manifest, got %+v", m)
	}
}

func TestLoadManifestParsesTOML(t *testing.T) {
	dir := t.TempDir()
	contents := `
name = "demo"
output = "build"
runtime = "rt/runtime.a"
link-objects = ["extra.o", "libsupport.a"]
`
	if err := os.WriteFile(filepath.Join(dir, "airyc-mod.toml"), []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	m, ok := LoadManifest(dir)
	if !ok {
		t.Fatal("LoadManifest should succeed on a well-formed manifest")
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q, want demo", m.Name)
	}
	if m.OutputPath != "build" {
		t.Errorf("OutputPath = %q, want build", m.OutputPath)
	}
	if m.RuntimePath != "rt/runtime.a" {
		t.Errorf("RuntimePath = %q, want rt/runtime.a", m.RuntimePath)
	}
	if len(m.LinkObjects) != 2 || m.LinkObjects[0] != "extra.o" || m.LinkObjects[1] != "libsupport.a" {
		t.Errorf("LinkObjects = %v, want [extra.o libsupport.a]", m.LinkObjects)
	}
}
