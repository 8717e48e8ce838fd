// File: check.go
// Role: Structural invariant validation (Check), default-driver repair
// (FixNondrivenNets), per-node support minimization (MinimumBase), and the
// combinational/sequential boundary views (MakeComb/MakeSeq).
package network

import (
	"errors"
	"fmt"
)

// requiredFanins reports the exact fanin count Check expects for kind, or
// -1 if any count is acceptable (internal logic nodes size their own
// fanins from their Func).
func requiredFanins(kind ObjKind) int {
	switch kind {
	case ObjPI, ObjLatchOut:
		return 0
	case ObjPO, ObjLatchIn:
		return 1
	case ObjAigAnd:
		return 2
	default:
		return -1
	}
}

// Check validates every structural invariant: fanin targets exist,
// fanin/fanout bookkeeping is symmetric, and each kind carries the fanin
// count its role requires. It returns every violation found, joined via
// errors.Join, or nil if the network is structurally sound.
func (n *Network) Check() error {
	n.muObj.RLock()
	defer n.muObj.RUnlock()

	var errs []error
	for id, obj := range n.objects {
		if want := requiredFanins(obj.Kind); want >= 0 && len(obj.Fanins) != want {
			errs = append(errs, fmtErr(id, "expected %d fanins, has %d", want, len(obj.Fanins)))
		}
		for _, fe := range obj.Fanins {
			src, ok := n.objects[fe.Src]
			if !ok {
				errs = append(errs, fmtErr(id, "fanin %d does not exist", fe.Src))
				continue
			}
			if _, ok := src.Fanouts[id]; !ok {
				errs = append(errs, fmtErr(id, "fanin %d missing reciprocal fanout entry", fe.Src))
			}
		}
		for foID := range obj.Fanouts {
			fo, ok := n.objects[foID]
			if !ok {
				errs = append(errs, fmtErr(id, "fanout %d does not exist", foID))
				continue
			}
			if !hasFaninFrom(fo, id) {
				errs = append(errs, fmtErr(id, "fanout %d missing reciprocal fanin entry", foID))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func hasFaninFrom(obj *Object, src uint64) bool {
	for _, fe := range obj.Fanins {
		if fe.Src == src {
			return true
		}
	}
	return false
}

func fmtErr(id uint64, format string, args ...interface{}) error {
	return fmt.Errorf("network: object %d: "+format, append([]interface{}{id}, args...)...)
}

// FixNondrivenNets attaches a shared constant-0 driver to every object
// whose required fanin count (per requiredFanins) exceeds its current
// fanin count, and returns how many fanins were added.
func (n *Network) FixNondrivenNets() int {
	zero := n.constZero()

	n.muObj.Lock()
	type fix struct {
		id    uint64
		count int
	}
	var todo []fix
	for id, obj := range n.objects {
		want := requiredFanins(obj.Kind)
		if want > len(obj.Fanins) {
			todo = append(todo, fix{id: id, count: want - len(obj.Fanins)})
		}
	}
	n.muObj.Unlock()

	added := 0
	for _, f := range todo {
		for i := 0; i < f.count; i++ {
			if err := n.AddFanin(f.id, zero, false); err == nil {
				added++
			}
		}
	}
	return added
}

// constZero lazily creates (once) a dedicated AIG node representing the
// constant-0 function, used by FixNondrivenNets as a default driver.
func (n *Network) constZero() uint64 {
	n.muObj.Lock()
	defer n.muObj.Unlock()
	if n.constZeroID != 0 {
		return n.constZeroID
	}
	id := n.nextID()
	n.objects[id] = &Object{
		ID:      id,
		Kind:    ObjNode,
		Fanouts: make(map[uint64]struct{}),
		Func:    FuncHandle{Kind: FuncAig, Aig: 0},
	}
	n.constZeroID = id
	return id
}

// MinimumBase recomputes id's fanin set from its SOP cover's own
// MinimumBase, dropping any fanin the cover no longer depends on and its
// reciprocal fanout entry. Returns ErrWrongKind if id is not a FuncSop
// node.
func (n *Network) MinimumBase(id uint64) error {
	n.muObj.Lock()
	defer n.muObj.Unlock()

	obj, ok := n.objects[id]
	if !ok {
		return ErrObjNotFound
	}
	if obj.Kind != ObjNode || obj.Func.Kind != FuncSop {
		return ErrWrongKind
	}

	reduced, keep := obj.Func.Sop.MinimumBase()
	if len(keep) == len(obj.Fanins) {
		return nil
	}

	keepSet := make(map[int]bool, len(keep))
	for _, k := range keep {
		keepSet[int(k)] = true
	}
	for i, fe := range obj.Fanins {
		if !keepSet[i] {
			if src, ok := n.objects[fe.Src]; ok {
				delete(src.Fanouts, id)
			}
		}
	}

	newFanins := make([]FaninEdge, 0, len(keep))
	for _, k := range keep {
		newFanins = append(newFanins, obj.Fanins[k])
	}
	obj.Fanins = newFanins
	obj.Func.Sop = reduced

	return nil
}

// MakeComb returns the combinational-view CI/CO catalogs: PIs/POs plus
// every latch pin, treating each latch as a free boundary the way ABC's
// Comb() view does. In this model latch pins never structurally chain
// through their Latch object, so this is a read-only selection rather
// than a network mutation.
func (n *Network) MakeComb() (cis, cos []uint64) {
	n.muFanIO.RLock()
	defer n.muFanIO.RUnlock()
	return append([]uint64(nil), n.CIs...), append([]uint64(nil), n.COs...)
}

// MakeSeq returns the sequential-view PI/PO catalogs: only the true
// circuit boundary, excluding latch pins.
func (n *Network) MakeSeq() (pis, pos []uint64) {
	n.muFanIO.RLock()
	defer n.muFanIO.RUnlock()
	return append([]uint64(nil), n.PIs...), append([]uint64(nil), n.POs...)
}
