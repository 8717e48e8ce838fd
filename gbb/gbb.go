// File: gbb.go
// Role: Global-BDD construction over a network.Network's combinational
// fanin cones, with a node-budget ceiling and reference-counted dropping
// of intermediate results, grounded on flow.Dinic's phase loop (periodic
// state rebuild gated by a counter, context cancellation checked per
// step, abort-and-report-false rather than partial results on overrun).
package gbb

import (
	"context"
	"errors"

	"github.com/vlsitools/lsynth/dd"
	"github.com/vlsitools/lsynth/network"
	"github.com/vlsitools/lsynth/sop"
	"github.com/vlsitools/lsynth/topo"
)

// ErrNilNetwork indicates a nil *network.Network or *dd.Manager was passed in.
var ErrNilNetwork = errors.New("gbb: nil network or manager")

// Params configures one Build call.
type Params struct {
	// NodeBudget caps the manager's live node count during the build; once
	// crossed, Build aborts and returns ok=false. NodeBudget<=0 means
	// unbounded.
	NodeBudget int

	// Reversed assigns BDD variable levels to the network's CIs (PIs and
	// latch outputs) back to front instead of front to back. Useful when a
	// caller already knows the natural PI order is a poor BDD order.
	Reversed bool

	// Reorder runs mgr.MaybeReorder() after every periodic checkpoint
	// (RebuildInterval nodes built), the same way Dinic rebuilds its level
	// graph every LevelRebuildInterval augmentations instead of every one.
	Reorder bool

	// RebuildInterval sets the periodic-checkpoint cadence in nodes built.
	// <=0 defaults to 64.
	RebuildInterval int

	// Ctx allows a long build over a large network to be cancelled.
	Ctx context.Context
}

func (p Params) normalize() Params {
	if p.RebuildInterval <= 0 {
		p.RebuildInterval = 64
	}
	if p.Ctx == nil {
		p.Ctx = context.Background()
	}
	return p
}

// builder holds the per-call working state: the partial map of object ID to
// its global BDD, and the remaining-fanout counters that drive dereference
// dropping.
type builder struct {
	net  *network.Network
	mgr  *dd.Manager
	p    Params
	bdd  map[uint64]dd.Edge
	rem  map[uint64]int // remaining live-fanout count, decremented as consumers finish
	done int
}

// Build constructs a global BDD for every object of the network in
// topological order, allocating one new manager variable per CI, and
// returns a map from object ID to its BDD edge, or false if the
// NodeBudget was exceeded before the walk completed. The map holds CIs,
// COs (which include latch-in sinks) and any object with no consumers;
// an internal object's entry is dropped once all its fanouts have read it.
// On overrun, every edge Build built is Deref'd and swept before
// returning; the variables allocated for the CIs stay in the manager.
//
// Complexity: O(V+E) manager operations where V/E are the size of the
// combinational fanin cone; each operation is itself bounded by the
// manager's own And/Ite cost.
func Build(net *network.Network, mgr *dd.Manager, p Params) (map[uint64]dd.Edge, bool) {
	if net == nil || mgr == nil {
		return nil, false
	}
	p = p.normalize()

	order, err := topo.TopoOrder(net)
	if err != nil {
		return nil, false
	}

	b := &builder{
		net: net,
		mgr: mgr,
		p:   p,
		bdd: make(map[uint64]dd.Edge, len(order)),
		rem: make(map[uint64]int, len(order)),
	}
	for _, id := range order {
		obj, ok := net.Object(id)
		if !ok {
			continue
		}
		b.rem[id] = len(obj.Fanouts)
	}

	ciVars := b.assignVars()

	ok := b.walk(order, ciVars)
	if !ok {
		b.rollback()
		return nil, false
	}

	out := make(map[uint64]dd.Edge, len(b.bdd))
	for id, e := range b.bdd {
		out[id] = e
	}
	return out, true
}

// assignVars allocates one manager variable per CI (PI or latch output),
// in Reversed or natural order, and records each CI's BDD edge directly in
// b.bdd so the main walk treats them like any other already-computed node.
func (b *builder) assignVars() map[uint64]dd.Edge {
	cis := append([]uint64(nil), b.net.CIs...)
	if b.p.Reversed {
		for i, j := 0, len(cis)-1; i < j; i, j = i+1, j-1 {
			cis[i], cis[j] = cis[j], cis[i]
		}
	}
	out := make(map[uint64]dd.Edge, len(cis))
	for _, id := range cis {
		v := b.mgr.NewVar()
		b.mgr.Ref(v)
		b.bdd[id] = v
		out[id] = v
	}
	return out
}

func (b *builder) walk(order []uint64, ciVars map[uint64]dd.Edge) bool {
	for _, id := range order {
		select {
		case <-b.p.Ctx.Done():
			return false
		default:
		}

		if _, isCI := ciVars[id]; isCI {
			continue
		}
		obj, ok := b.net.Object(id)
		if !ok {
			continue
		}

		e, built := b.compose(obj)
		if built {
			b.mgr.Ref(e)
			b.bdd[id] = e
			b.done++
		}

		b.dropConsumedFanins(obj)

		if b.p.NodeBudget > 0 && b.mgr.Size() > b.p.NodeBudget {
			return false
		}
		if b.done%b.p.RebuildInterval == 0 {
			b.mgr.CollectGarbage()
			if b.p.Reorder {
				remap := b.mgr.MaybeReorder()
				for id, e := range b.bdd {
					if ne, ok := remap[e]; ok {
						b.bdd[id] = ne
					}
				}
			}
		}
	}
	return true
}

// compose builds obj's own global function from its fanins' already-built
// edges. Returns built=false for objects that carry no function of their
// own (PO/LatchIn/Box), which simply alias their single fanin.
func (b *builder) compose(obj *network.Object) (dd.Edge, bool) {
	switch obj.Kind {
	case network.ObjPO, network.ObjLatchIn:
		if len(obj.Fanins) != 1 {
			return dd.Edge{}, false
		}
		return b.faninEdge(obj.Fanins[0]), true

	case network.ObjAigAnd:
		if len(obj.Fanins) != 2 {
			return dd.Edge{}, false
		}
		a := b.faninEdge(obj.Fanins[0])
		c := b.faninEdge(obj.Fanins[1])
		return b.mgr.And(a, c), true

	case network.ObjNode:
		return b.composeNode(obj)

	default:
		return dd.Edge{}, false
	}
}

// composeNode handles an ObjNode's Func payload: an SOP cover builds via
// sop.ToBDD, with the node's own fanins passed straight through (FuncSop
// fanins are always wired uncomplemented by convention; the cube literals
// alone carry polarity, never FaninEdge.Compl — see sop's ToBDD/FromBDD and
// collapse's node construction). A node already carrying Kind==FuncBdd is
// Transferred in directly from the network's own manager (net.DD); on a
// network with no manager such a node is not built. A mapped 3-fanin mux gate is recognized
// structurally and built with a single Ite instead of two Ands and an Or.
func (b *builder) composeNode(obj *network.Object) (dd.Edge, bool) {
	switch obj.Func.Kind {
	case network.FuncSop:
		if obj.Func.Sop == nil {
			return dd.Edge{}, false
		}
		vars := make([]dd.Edge, len(obj.Fanins))
		for i, fe := range obj.Fanins {
			vars[i] = b.faninEdge(network.FaninEdge{Src: fe.Src})
		}
		return sop.ToBDD(b.mgr, obj.Func.Sop, vars), true

	case network.FuncBdd:
		if obj.Func.Bdd.IsNull() || b.net.DD == nil {
			return dd.Edge{}, false
		}
		return b.net.DD.Transfer(obj.Func.Bdd, b.mgr), true

	case network.FuncGate:
		if obj.Func.Gate == "mux" && len(obj.Fanins) == 3 {
			sel := b.faninEdge(obj.Fanins[0])
			d1 := b.faninEdge(obj.Fanins[1])
			d0 := b.faninEdge(obj.Fanins[2])
			return b.mgr.Ite(sel, d1, d0), true
		}
		return dd.Edge{}, false

	default:
		return dd.Edge{}, false
	}
}

func (b *builder) faninEdge(fe network.FaninEdge) dd.Edge {
	e, ok := b.bdd[fe.Src]
	if !ok {
		return b.mgr.ReadZero()
	}
	if fe.Compl {
		return b.mgr.Not(e)
	}
	return e
}

// dropConsumedFanins decrements each fanin's remaining-fanout counter now
// that obj has consumed it, and Derefs+drops any fanin whose counter hits
// zero, the same "lowest remaining capacity wins, then discard" shape as
// Dinic's blocking-flow DFS retiring a saturated edge from the level graph
// as soon as its last unit of flow is pushed.
func (b *builder) dropConsumedFanins(obj *network.Object) {
	for _, fe := range obj.Fanins {
		n, ok := b.rem[fe.Src]
		if !ok {
			continue
		}
		n--
		b.rem[fe.Src] = n
		if n <= 0 {
			if e, ok := b.bdd[fe.Src]; ok {
				srcObj, _ := b.net.Object(fe.Src)
				if srcObj == nil || (srcObj.Kind != network.ObjPI && srcObj.Kind != network.ObjLatchOut) {
					b.mgr.Deref(e)
					delete(b.bdd, fe.Src)
				}
			}
		}
	}
}

// rollback Derefs every edge this call built, for the abort path.
func (b *builder) rollback() {
	for _, e := range b.bdd {
		b.mgr.Deref(e)
	}
	b.mgr.CollectGarbage()
}
