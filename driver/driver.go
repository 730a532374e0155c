package driver

import (
	"os"
	"path/filepath"

	"github.com/widsnoy/airyc/depm"
	"github.com/widsnoy/airyc/generate"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/walk"
)

// Compile runs one full build: load, analyze, lower, write IR, link.
// It reports every diagnostic it collects along the way and returns
// whether the build succeeded. A false return always corresponds to at
// least one reported error.
func Compile(profile Profile) bool {
	entryAbs, err := filepath.Abs(profile.EntryPath)
	if err != nil {
		report.ReportFatal("cannot resolve entry path `%s`: %s", profile.EntryPath, err.Error())
		return false
	}
	profile.EntryPath = entryAbs

	resolved, stem, ok := profile.resolve()
	if !ok {
		return false
	}

	if err := os.MkdirAll(resolved.OutDir, 0o755); err != nil {
		report.ReportFatal("cannot create output directory `%s`: %s", resolved.OutDir, err.Error())
		return false
	}

	loader := depm.NewLoader(filepath.Dir(resolved.EntryPath))
	graph, loaded := loader.Load(resolved.EntryPath)
	if !loaded || !report.ShouldProceed() {
		return false
	}
	if !depm.CheckImportCycles(graph) {
		return false
	}

	facts, analyzed := walk.AnalyzeAll(graph)
	if !analyzed {
		return false
	}

	outs := generate.GenerateAll(graph, facts)

	llFiles, err := writeModules(resolved.OutDir, outs)
	if err != nil {
		report.ReportFatal("failed to write generated IR: %s", err.Error())
		return false
	}

	exePath := filepath.Join(resolved.OutDir, stem)
	if err := link(exePath, llFiles, resolved.LinkObjects, resolved.RuntimePath); err != nil {
		report.ReportFatal("link failed: %s", err.Error())
		return false
	}

	return true
}

// writeModules serializes every lowered module to its own .ll file in
// outDir (one translation unit per source file, per the
// CLI's documented output contract), returning the paths in module order.
func writeModules(outDir string, outs []*generate.Output) ([]string, error) {
	paths := make([]string, 0, len(outs))
	for _, out := range outs {
		name := filepath.Base(out.Module.AbsPath)
		name = name[:len(name)-len(filepath.Ext(name))] + ".ll"
		path := filepath.Join(outDir, name)

		if err := os.WriteFile(path, []byte(out.IR.String()), 0o644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
