// Package driver orchestrates a single compile: loading the module graph,
// running analysis, lowering to LLVM IR, and invoking the system C
// toolchain to link the result into a native executable. It is the
// concrete interface behind the `airyc` CLI.
package driver

import (
	"path/filepath"
	"strings"

	"github.com/widsnoy/airyc/depm"
)

// Profile is the resolved set of options for one compile, after CLI flags
// have been layered on top of any project manifest.
type Profile struct {
	// EntryPath is the source file passed with -i.
	EntryPath string

	// OutDir is where .ll files and the linked executable are written.
	// Defaults to the entry file's own directory.
	OutDir string

	// RuntimePath is an optional runtime archive (-r) linked alongside the
	// generated object code.
	RuntimePath string

	// LinkObjects are extra objects/archives from the manifest, linked
	// before RuntimePath.
	LinkObjects []string

	// OptLevel is accepted and stored but never consulted by lowering;
	// Airyc performs no optimization passes.
	OptLevel string
}

// resolve fills in any field the caller left blank from the optional
// project manifest sitting next to the entry file, then computes the
// output directory and executable name. CLI-supplied fields always win:
// the manifest only ever supplies a default. ok is false only if the
// manifest exists but could not be read; LoadManifest has already
// reported the fatal error in that case.
func (p Profile) resolve() (resolved Profile, stem string, ok bool) {
	dir := filepath.Dir(p.EntryPath)

	manifest, ok := depm.LoadManifest(dir)
	if !ok {
		return p, "", false
	}

	if p.OutDir == "" {
		p.OutDir = manifest.OutputPath
	}
	if p.OutDir == "" {
		p.OutDir = dir
	}

	if p.RuntimePath == "" {
		p.RuntimePath = manifest.RuntimePath
	}
	p.LinkObjects = append(append([]string{}, manifest.LinkObjects...), p.LinkObjects...)

	stem = filepath.Base(p.EntryPath)
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))

	return p, stem, true
}
