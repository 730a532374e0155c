package depm

import "github.com/widsnoy/airyc/report"

// color is the three-color DFS marker used to find cycles in the import
// graph.
type color int

const (
	colorWhite color = iota
	colorGrey
	colorBlack
)

// CheckImportCycles walks the import graph looking for a cycle. On the
// first back-edge found it reports a CircularDependency diagnostic naming
// every module on the cycle and returns false; module loading halts at
// that point.
func CheckImportCycles(g *ModuleGraph) bool {
	colors := make(map[ModuleID]color)

	for _, m := range g.Modules() {
		if colors[m.ID] == colorWhite {
			var path []ModuleID
			if !searchFrom(g, m.ID, colors, &path) {
				reportCycle(g, path)
				return false
			}
		}
	}

	return true
}

// searchFrom performs the DFS step from id, appending ids to path as it
// descends so that a detected cycle can be reported with its full route.
func searchFrom(g *ModuleGraph, id ModuleID, colors map[ModuleID]color, path *[]ModuleID) bool {
	colors[id] = colorGrey
	*path = append(*path, id)

	m := g.Module(id)
	for _, imp := range m.Imports {
		if !imp.Resolved {
			continue
		}
		switch colors[imp.Target] {
		case colorBlack:
			continue
		case colorGrey:
			*path = append(*path, imp.Target)
			return false
		default: // white
			if !searchFrom(g, imp.Target, colors, path) {
				return false
			}
		}
	}

	colors[id] = colorBlack
	*path = (*path)[:len(*path)-1]
	return true
}

// reportCycle emits a CircularDependency diagnostic against the first
// module on the discovered cycle, naming every module on the route.
func reportCycle(g *ModuleGraph, path []ModuleID) {
	if len(path) == 0 {
		return
	}

	// Trim the path down to just the cycle itself: find where the
	// repeated id first appeared.
	closing := path[len(path)-1]
	begin := 0
	for i, id := range path {
		if id == closing {
			begin = i
			break
		}
	}
	cycle := path[begin:]

	names := make([]string, len(cycle))
	for i, id := range cycle {
		names[i] = g.Module(id).ReprPath
	}

	startMod := g.Module(cycle[0])
	report.ReportCompileError(startMod.AbsPath, startMod.ReprPath, nil,
		report.KindCircularDependency, "",
		"circular import dependency: "+joinArrow(names))
}

func joinArrow(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}
