package merge

// Outcome is the per-path result of comparing ancestor/ours/theirs blob
// hashes during a three-way merge.
type Outcome int

const (
	NoChange Outcome = iota
	TakeTheirs
	KeepOurs
	DeletionAccepted
	ConflictAddedModified
	ConflictBothModified
	ConflictDeletedModified
)

func (o Outcome) IsConflict() bool {
	switch o {
	case ConflictAddedModified, ConflictBothModified, ConflictDeletedModified:
		return true
	default:
		return false
	}
}

// PathResult is one path's three-way classification.
type PathResult struct {
	Path     string
	Outcome  Outcome
	Resolved string // resolved blob hash; for non-conflict outcomes "" means the path is deleted
}

// ThreeWay classifies every path present in any of ancestorTree, oursTree,
// theirsTree by comparing its presence and blob hash across all three.
// Content comparison is by blob hash; hash equality implies content
// equality.
func ThreeWay(ancestorTree, oursTree, theirsTree map[string]string) []PathResult {
	all := map[string]bool{}
	for p := range ancestorTree {
		all[p] = true
	}
	for p := range oursTree {
		all[p] = true
	}
	for p := range theirsTree {
		all[p] = true
	}

	results := make([]PathResult, 0, len(all))
	for p := range all {
		a, hasA := ancestorTree[p]
		o, hasO := oursTree[p]
		t, hasT := theirsTree[p]
		results = append(results, classifyPath(p, a, hasA, o, hasO, t, hasT))
	}
	return results
}

func classifyPath(path string, a string, hasA bool, o string, hasO bool, t string, hasT bool) PathResult {
	switch {
	case !hasA && !hasO && hasT:
		return PathResult{Path: path, Outcome: TakeTheirs, Resolved: t}
	case !hasA && hasO && !hasT:
		return PathResult{Path: path, Outcome: KeepOurs, Resolved: o}
	case !hasA && hasO && hasT:
		if o == t {
			return PathResult{Path: path, Outcome: KeepOurs, Resolved: o}
		}
		return PathResult{Path: path, Outcome: ConflictAddedModified}

	case hasA && hasO && hasT:
		if o == a && t == a {
			return PathResult{Path: path, Outcome: NoChange, Resolved: a}
		}
		if o == a && t != a {
			return PathResult{Path: path, Outcome: TakeTheirs, Resolved: t}
		}
		if t == a && o != a {
			return PathResult{Path: path, Outcome: KeepOurs, Resolved: o}
		}
		if o == t {
			return PathResult{Path: path, Outcome: NoChange, Resolved: o}
		}
		return PathResult{Path: path, Outcome: ConflictBothModified}

	case hasA && !hasO && hasT:
		if t == a {
			return PathResult{Path: path, Outcome: DeletionAccepted}
		}
		return PathResult{Path: path, Outcome: ConflictDeletedModified, Resolved: t}

	case hasA && hasO && !hasT:
		if o == a {
			return PathResult{Path: path, Outcome: DeletionAccepted}
		}
		return PathResult{Path: path, Outcome: ConflictDeletedModified, Resolved: o}

	default:
		// hasA && !hasO && !hasT: deleted on both sides, nothing to do.
		return PathResult{Path: path, Outcome: DeletionAccepted}
	}
}
