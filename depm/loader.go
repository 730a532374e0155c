package depm

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/widsnoy/airyc/ast"
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/syntax"
)

// Loader loads the transitive closure of files reachable from an entry
// file, parsing each path at most once and resolving import directives as
// modules are discovered.
type Loader struct {
	graph   *ModuleGraph
	rootDir string

	// workset holds paths discovered but not yet parsed.
	workset []string
}

// NewLoader creates a loader rooted at the directory containing the entry
// file; relative import paths are resolved against the importing file's
// own directory, not rootDir, but rootDir is kept to compute display
// paths.
func NewLoader(rootDir string) *Loader {
	return &Loader{
		graph:   NewModuleGraph(),
		rootDir: rootDir,
	}
}

// Load parses entryPath and every file transitively reachable from it via
// import directives, returning the populated graph. It returns false if
// any file failed to load or parse into a tree we can analyze further
// (a returned tree with recorded ParseError diagnostics is still usable:
// only I/O failures are fatal to the load itself).
func (l *Loader) Load(entryPath string) (*ModuleGraph, bool) {
	abs, err := filepath.Abs(entryPath)
	if err != nil {
		report.ReportFatal("cannot resolve entry path `%s`: %s", entryPath, err.Error())
		return l.graph, false
	}

	entry, ok := l.loadFile(abs, filepath.Base(entryPath))
	if !ok {
		return l.graph, false
	}
	l.graph.EntryID = entry.ID

	ok = true
	for len(l.workset) > 0 {
		path := l.workset[0]
		l.workset = l.workset[1:]

		importer := l.graph
		m, found := importer.Lookup(path)
		if found && m.Root != nil {
			continue
		}

		if _, loaded := l.loadFile(path, l.reprPath(path)); !loaded {
			ok = false
		}
	}

	l.resolveImports()

	return l.graph, ok
}

// loadFile reads, lexes, and parses one source file, registers it in the
// graph, queues its imports, and returns the new module.
func (l *Loader) loadFile(absPath, reprPath string) (*Module, bool) {
	if m, ok := l.graph.Lookup(absPath); ok {
		return m, true
	}

	src, err := os.ReadFile(absPath)
	if err != nil {
		report.ReportStdError(reprPath, err)
		return nil, false
	}

	p := syntax.NewParser(absPath, reprPath, src)
	root := p.Parse()

	m := l.graph.insert(absPath, reprPath, src, root)

	dir := filepath.Dir(absPath)
	for _, imp := range ast.Imports(root) {
		m.Imports = append(m.Imports, l.queueImport(dir, imp))
	}

	return m, true
}

// queueImport resolves one NodeImport's path token relative to dir,
// queues the target file for loading if it hasn't been seen yet, and
// returns the unresolved Import edge (its Target is filled in once every
// file has been loaded, by resolveImports).
func (l *Loader) queueImport(dir string, node *syntax.Node) *Import {
	imp := &Import{Node: node, Kind: ImportAll}

	pathTok, ok := ast.ImportPath(node)
	if !ok {
		return imp
	}
	rawPath := unquote(pathTok.Text)

	if sym, ok := ast.ImportSymbol(node); ok {
		imp.Kind = ImportSelective
		imp.Symbol = sym.Text
	}

	target := filepath.Clean(filepath.Join(dir, rawPath))
	if !strings.HasSuffix(target, ".airy") {
		target += ".airy"
	}

	if _, ok := l.graph.byPath[target]; !ok {
		l.workset = append(l.workset, target)
	}
	imp.resolvedPath = target

	return imp
}

// resolveImports fills in Target/Resolved on every queued import edge now
// that all reachable files have been parsed and registered.
func (l *Loader) resolveImports() {
	for _, m := range l.graph.Modules() {
		for _, imp := range m.Imports {
			target, ok := l.graph.Lookup(imp.resolvedPath)
			if !ok {
				report.ReportCompileError(m.AbsPath, m.ReprPath, imp.Node.Span(),
					report.KindUnresolvedName, "",
					"cannot find imported module \""+imp.resolvedPath+"\"")
				continue
			}
			imp.Target = target.ID
			imp.Resolved = true
		}
	}
}

// reprPath computes the path shown to the user: relative to the loader's
// root directory when possible, absolute otherwise.
func (l *Loader) reprPath(absPath string) string {
	if rel, err := filepath.Rel(l.rootDir, absPath); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return absPath
}

func unquote(text string) string {
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text[1 : len(text)-1]
	}
	return text
}
