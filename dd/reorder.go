// File: reorder.go
// Role: Dynamic variable reordering (spec §4.1 reduce_heap / sifting).
//
// The classical sifting algorithm swaps adjacent levels in place, updating
// only the nodes that straddle the swapped pair. This implementation
// instead evaluates each candidate order by rebuilding a trial manager
// with that order and transferring every live node into it, then commits
// the best order found. It is an O(size) factor slower than the in-place
// swap per candidate, but it never has to reason about partially-updated
// unique-table state, and it produces the exact same externally-visible
// contract: every edge live before ReduceHeap still denotes the same
// function afterward, just at (possibly) a new slab index, which is why
// ReduceHeap hands back a remap table instead of mutating edges in place.
package dd

import "log"

// ReorderMethod selects a reordering heuristic. Only sifting is implemented;
// the type exists so spec-level callers can name their intent.
type ReorderMethod int

const (
	ReorderSift ReorderMethod = iota
)

// reorderGrowthFactor bounds how much a trial order is allowed to grow the
// shared DAG, relative to the best size seen so far, before being rejected
// outright as a candidate (spec §4.1: "accepting only permutations that do
// not grow the shared DAG beyond a configurable factor of current size").
const reorderGrowthFactor = 1.2

// ReduceHeap runs one round of dynamic reordering over every live node and
// returns a map from each edge that was live beforehand to its equivalent
// edge afterward. Callers holding Edge values across a ReduceHeap call must
// look them up in this map.
func (m *Manager) ReduceHeap(method ReorderMethod) map[Edge]Edge {
	if len(m.levelToVar) < 2 {
		return map[Edge]Edge{}
	}

	order := append([]int32(nil), m.levelToVar...)
	bestSize := m.trialSize(order)
	growthCap := float64(bestSize) * reorderGrowthFactor

	n := len(order)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			trial := movePosition(order, i, j)
			size := m.trialSize(trial)
			if size < bestSize && float64(size) <= growthCap {
				bestSize = size
				order = trial
				growthCap = float64(bestSize) * reorderGrowthFactor
			}
		}
	}

	remap := m.applyOrder(order)
	m.sinceReorder = 0
	if m.Verbose {
		m.logf("reorder: settled at %d live nodes", m.liveCnt)
	}
	return remap
}

// MaybeReorder triggers ReduceHeap if the live node count has doubled since
// the last reorder (spec §4.1's periodic trigger), returning nil if no
// reorder ran.
func (m *Manager) MaybeReorder() map[Edge]Edge {
	if m.reorderThreshold <= 0 || m.liveCnt < m.reorderThreshold {
		return nil
	}
	remap := m.ReduceHeap(ReorderSift)
	m.reorderThreshold = m.liveCnt * 2
	return remap
}

// trialSize builds a throwaway manager with the given variable order,
// transfers every live node into it, and returns its resulting size.
func (m *Manager) trialSize(order []int32) int {
	temp := newManagerWithOrder(order)
	for idx := int32(1); idx < int32(len(m.nodes)); idx++ {
		if m.nodes[idx].free {
			continue
		}
		m.Transfer(Edge{idx: idx}, temp)
	}
	return temp.Size()
}

// applyOrder rebuilds the manager in place under the given order, keeping
// the *Manager pointer identity stable for holders of *dd.Manager, and
// returns the old-edge -> new-edge remap for every previously live node
// (regular and complemented forms alike).
func (m *Manager) applyOrder(order []int32) map[Edge]Edge {
	temp := newManagerWithOrder(order)
	remap := make(map[Edge]Edge, 2*len(m.nodes))
	for idx := int32(1); idx < int32(len(m.nodes)); idx++ {
		if m.nodes[idx].free {
			continue
		}
		reg := Edge{idx: idx, compl: false}
		transferred := m.Transfer(reg, temp)
		if transferred.idx != oneIdx {
			temp.nodes[transferred.idx].ref += m.nodes[idx].ref
		}
		remap[reg] = transferred
		remap[Edge{idx: idx, compl: true}] = temp.Not(transferred)
	}

	m.nodes = temp.nodes
	m.unique = temp.unique
	m.freeHead = temp.freeHead
	m.liveCnt = temp.liveCnt
	m.varToLevel = temp.varToLevel
	m.levelToVar = temp.levelToVar
	m.varNode = temp.varNode
	m.levelTerminal = temp.levelTerminal
	m.cache = make(map[cacheKey]Edge)

	return remap
}

// newManagerWithOrder builds an otherwise-empty manager whose level i holds
// variable order[i], with every variable's projection node already built.
func newManagerWithOrder(order []int32) *Manager {
	n := int32(len(order))
	temp := &Manager{
		nodes:            make([]node, 1, 64+len(order)),
		unique:           make(map[triple]int32),
		freeHead:         nullIdx,
		numVars:          n,
		varToLevel:       make([]int32, n),
		levelToVar:       append([]int32(nil), order...),
		varNode:          make([]Edge, n),
		levelTerminal:    n,
		cache:            make(map[cacheKey]Edge),
		cacheMax:         1 << 16,
		reorderThreshold: 512,
	}
	temp.nodes[0] = node{level: temp.levelTerminal, ref: 1}
	for lvl, v := range order {
		temp.varToLevel[v] = int32(lvl)
	}
	for lvl := int32(0); lvl < n; lvl++ {
		v := order[lvl]
		proj := temp.mk(lvl, temp.ReadOne(), temp.ReadZero())
		temp.nodes[proj.idx].ref++
		temp.varNode[v] = proj
	}
	return temp
}

// logf emits a one-line status message when Verbose is set, matching the
// stdlib-log status-line convention this package borrows for its own
// bookkeeping operations.
func (m *Manager) logf(format string, args ...interface{}) {
	log.Printf("dd: "+format, args...)
}

// movePosition returns a copy of order with the element at `from` relocated
// to position `to`, shifting the intervening elements.
func movePosition(order []int32, from, to int) []int32 {
	out := make([]int32, 0, len(order))
	v := order[from]
	rest := make([]int32, 0, len(order)-1)
	for i, x := range order {
		if i != from {
			rest = append(rest, x)
		}
	}
	out = append(out, rest[:to]...)
	out = append(out, v)
	out = append(out, rest[to:]...)
	return out
}
