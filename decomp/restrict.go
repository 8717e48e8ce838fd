package decomp

import "github.com/vlsitools/lsynth/dd"

// restrictSet returns f restricted by a full assignment to the variables
// named in assign (every variable in assign fixed to its mapped value),
// recursing through the manager's own node structure: a free (unassigned)
// node is rebuilt from its two recursively-restricted children.
func restrictSet(mgr *dd.Manager, f dd.Edge, assign map[int32]bool) dd.Edge {
	v, ok := mgr.TopVar(f)
	if !ok {
		return f
	}
	if val, bound := assign[v]; bound {
		return restrictSet(mgr, mgr.Cofactor(f, v, val), assign)
	}

	lo := restrictSet(mgr, mgr.Cofactor(f, v, false), assign)
	hi := restrictSet(mgr, mgr.Cofactor(f, v, true), assign)
	return mgr.Ite(mgr.IthVar(int(v)), hi, lo)
}

// cofactorVar restricts f by one variable, whether or not v is f's own top
// variable.
func cofactorVar(mgr *dd.Manager, f dd.Edge, v int32, val bool) dd.Edge {
	return restrictSet(mgr, f, map[int32]bool{v: val})
}
