package types

// RecursiveType checks every declared struct for infinite size: a field
// of struct type T (not a pointer to T) induces an edge S -> T; any cycle
// in that graph is an error, because it would require a struct to
// contain itself by value. Pointer fields never induce an edge, so
// pointer-based recursive structures remain legal.
//
// The search is a standard three-color DFS -- white/grey/black --
// applied across every struct reachable from every module rather than
// within a single set of declarations.
func RecursiveType(defs []*StructDef) (cyclePath []string, ok bool) {
	ok = true

	for _, sd := range defs {
		if sd.color == ColorWhite {
			var path []*StructDef
			if !searchFrom(sd, &path) {
				cyclePath = reprPath(path)
				ok = false
			}
		}
	}

	return cyclePath, ok
}

// searchFrom performs one three-color DFS step over by-value struct
// fields: white nodes are visited, grey nodes signal a completed cycle,
// black nodes are skipped as already cleared.
func searchFrom(sd *StructDef, path *[]*StructDef) bool {
	sd.color = ColorGrey
	*path = append(*path, sd)

	for _, f := range sd.Fields {
		ref, ok := f.Type.(*StructRef)
		if !ok {
			continue
		}
		child := ref.Def
		switch child.color {
		case ColorBlack:
			continue
		case ColorGrey:
			*path = append(*path, child)
			return false
		default: // white
			if !searchFrom(child, path) {
				return false
			}
		}
	}

	sd.color = ColorBlack
	*path = (*path)[:len(*path)-1]
	return true
}

// reprPath trims a full DFS path down to the cycle itself and renders it
// as a list of struct names, eg. ["StructA", "StructB", "StructA"].
func reprPath(path []*StructDef) []string {
	if len(path) == 0 {
		return nil
	}
	closing := path[len(path)-1]
	begin := 0
	for i, sd := range path {
		if sd == closing {
			begin = i
			break
		}
	}
	cycle := path[begin:]
	names := make([]string, len(cycle))
	for i, sd := range cycle {
		names[i] = sd.Name
	}
	return names
}

// ResetColors clears the transient DFS marks on every struct so
// RecursiveType can be re-run (eg. by tests exercising multiple
// scenarios against the same definitions).
func ResetColors(defs []*StructDef) {
	for _, sd := range defs {
		sd.color = ColorWhite
	}
}
